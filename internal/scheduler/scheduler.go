// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler refreshes cached collections on a cron schedule.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/model"
)

// refreshTimeout bounds a single refresh run.
const refreshTimeout = time.Minute

// Invalidator drops a cached collection.
type Invalidator interface {
	Invalidate(ctx context.Context, collection string) error
}

// Warmer reads a collection, filling the cache as a side effect.
type Warmer interface {
	List(ctx context.Context, collection string) content.LoadResult[json.RawMessage]
}

// Scheduler handles the periodic refresh of cached collections.
type Scheduler struct {
	schedule string
	cache    Invalidator
	warmer   Warmer
	cron     *cron.Cron
	logger   *slog.Logger
}

// ValidateSchedule checks a standard five-field cron expression
// (descriptors such as "@every 5m" are accepted too).
func ValidateSchedule(schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// New creates a new scheduler instance.
func New(schedule string, cache Invalidator, warmer Warmer, logger *slog.Logger) (*Scheduler, error) {
	if err := ValidateSchedule(schedule); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		schedule: schedule,
		cache:    cache,
		warmer:   warmer,
		cron:     cron.New(),
		logger:   logger,
	}, nil
}

// Start registers the refresh job and starts the cron runner.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		s.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cache refresh scheduled", "schedule", s.schedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running refresh.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Refresh invalidates and reloads every collection. It returns the number
// of collections that reloaded successfully. A failed reload leaves the
// collection uncached so the next request reads through to the source.
func (s *Scheduler) Refresh(ctx context.Context) int {
	refreshed := 0
	for _, collection := range model.Collections {
		if err := s.cache.Invalidate(ctx, collection); err != nil {
			s.logger.Warn("failed to invalidate cached collection",
				"collection", collection, "error", err)
			continue
		}

		res := s.warmer.List(ctx, collection)
		if res.Failed() {
			// The loader has already logged the failure.
			continue
		}
		refreshed++
		s.logger.Debug("refreshed cached collection",
			"collection", collection, "records", len(res.Records))
	}
	return refreshed
}
