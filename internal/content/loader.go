// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/store"
)

// DefaultLoadTimeout bounds a single collection read when none is configured.
const DefaultLoadTimeout = 10 * time.Second

// LoadState tags the outcome of a collection load.
type LoadState int

// Load states. The zero value is StateLoading.
const (
	StateLoading LoadState = iota
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// LoadResult is the outcome of one collection read. Records is never nil
// once the load has settled; on failure it is empty and Err is set.
//
// Stale is set when the caller's context ended before the read resolved.
// A stale result must not be applied to the view that requested it.
type LoadResult[T any] struct {
	State   LoadState
	Records []T
	Err     error
	Stale   bool
}

// Loaded reports whether the read succeeded.
func (r LoadResult[T]) Loaded() bool { return r.State == StateLoaded }

// Failed reports whether the read failed.
func (r LoadResult[T]) Failed() bool { return r.State == StateFailed }

// Loader performs one bounded read of a collection per call and decodes it.
// It holds no state between calls, so concurrent requests never share
// results.
type Loader struct {
	source  store.Source
	timeout time.Duration
	logger  *slog.Logger
}

// NewLoader creates a loader over source. A non-positive timeout uses
// DefaultLoadTimeout; a nil logger uses slog.Default().
func NewLoader(source store.Source, timeout time.Duration, logger *slog.Logger) *Loader {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, timeout: timeout, logger: logger}
}

// Blog loads every blog post, drafts included.
func (l *Loader) Blog(ctx context.Context) LoadResult[model.BlogPost] {
	return load(ctx, l, model.CollectionBlog, store.DecodeBlog)
}

// Jobs loads every job posting, drafts included.
func (l *Loader) Jobs(ctx context.Context) LoadResult[model.Job] {
	return load(ctx, l, model.CollectionJobs, store.DecodeJobs)
}

// List returns the raw documents of collection in storage order. An
// unknown collection loads as empty.
func (l *Loader) List(ctx context.Context, collection string) LoadResult[json.RawMessage] {
	if !model.KnownCollection(collection) {
		return LoadResult[json.RawMessage]{State: StateLoaded, Records: make([]json.RawMessage, 0)}
	}
	return load(ctx, l, collection, func(docs []json.RawMessage, _ *slog.Logger) []json.RawMessage {
		return docs
	})
}

// Ping checks the underlying source when it supports health checks.
func (l *Loader) Ping(ctx context.Context) error {
	p, ok := l.source.(store.Pinger)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return p.Ping(ctx)
}

func load[T any](ctx context.Context, l *Loader, collection string, decode func([]json.RawMessage, *slog.Logger) []T) LoadResult[T] {
	docs, err := l.read(ctx, collection)
	stale := ctx.Err() != nil

	if err != nil {
		if stale {
			l.logger.Debug("discarding load for finished request", "collection", collection, "error", err)
		} else {
			l.logger.Error("collection unavailable",
				"category", "collection_unavailable",
				"collection", collection,
				"error", err)
		}
		return LoadResult[T]{
			State:   StateFailed,
			Records: make([]T, 0),
			Err:     fmt.Errorf("%w: %s: %w", ErrCollectionUnavailable, collection, err),
			Stale:   stale,
		}
	}

	records := decode(docs, l.logger)
	if records == nil {
		records = make([]T, 0)
	}
	return LoadResult[T]{State: StateLoaded, Records: records, Stale: stale}
}

// read performs a single List call bounded by the loader timeout. It
// returns as soon as the deadline passes even if the source ignores its
// context.
func (l *Loader) read(ctx context.Context, collection string) ([]json.RawMessage, error) {
	readCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	type outcome struct {
		docs []json.RawMessage
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		docs, err := l.source.List(readCtx, collection)
		done <- outcome{docs: docs, err: err}
	}()

	select {
	case o := <-done:
		return o.docs, o.err
	case <-readCtx.Done():
		return nil, readCtx.Err()
	}
}
