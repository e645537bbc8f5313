// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/olegiv/staffsite/internal/cache"
	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/store"
)

// countingSource counts reads per collection and can fail one of them.
type countingSource struct {
	mu    sync.Mutex
	reads map[string]int
	fail  string
}

func (s *countingSource) List(_ context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[collection]++
	if collection == s.fail {
		return nil, errors.New("source down")
	}
	return []json.RawMessage{json.RawMessage(`{"id":"1","status":"published"}`)}, nil
}

func (s *countingSource) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[collection]
}

func newCached(t *testing.T, src store.Source) *store.CachedSource {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour, MaxSize: 100})
	cached := store.NewCachedSource(src, c, time.Hour)
	t.Cleanup(func() { _ = cached.Close() })
	return cached
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"*/5 * * * *", false},
		{"0 3 * * *", false},
		{"@every 10m", false},
		{"@hourly", false},
		{"", true},
		{"every five minutes", true},
		{"* * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSchedule(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	src := &countingSource{reads: map[string]int{}}
	cached := newCached(t, src)
	loader := content.NewLoader(cached, time.Second, slog.Default())

	s, err := New("@every 1h", cached, loader, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}

	if _, err := New("not a schedule", cached, loader, nil); err == nil {
		t.Error("New() accepted an invalid schedule")
	}
}

func TestScheduler_Refresh(t *testing.T) {
	src := &countingSource{reads: map[string]int{}}
	cached := newCached(t, src)
	loader := content.NewLoader(cached, time.Second, slog.Default())
	ctx := context.Background()

	// Fill the cache, then read again without touching the source.
	loader.List(ctx, model.CollectionBlog)
	loader.List(ctx, model.CollectionBlog)
	if got := src.count(model.CollectionBlog); got != 1 {
		t.Fatalf("reads before refresh = %d, want 1", got)
	}

	s, err := New("@every 1h", cached, loader, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := s.Refresh(ctx); got != len(model.Collections) {
		t.Errorf("Refresh() = %d, want %d", got, len(model.Collections))
	}
	if got := src.count(model.CollectionBlog); got != 2 {
		t.Errorf("blog reads after refresh = %d, want 2", got)
	}
	if got := src.count(model.CollectionJobs); got != 1 {
		t.Errorf("jobs reads after refresh = %d, want 1", got)
	}

	// The refreshed copy serves the next request.
	loader.List(ctx, model.CollectionBlog)
	if got := src.count(model.CollectionBlog); got != 2 {
		t.Errorf("blog reads after cached request = %d, want 2", got)
	}
}

func TestScheduler_RefreshFailure(t *testing.T) {
	src := &countingSource{reads: map[string]int{}, fail: model.CollectionJobs}
	cached := newCached(t, src)
	loader := content.NewLoader(cached, time.Second, slog.Default())

	s, err := New("@every 1h", cached, loader, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := s.Refresh(context.Background()); got != 1 {
		t.Errorf("Refresh() = %d, want 1", got)
	}

	// A failed read is not cached, so the next request retries the source.
	loader.List(context.Background(), model.CollectionJobs)
	if got := src.count(model.CollectionJobs); got != 2 {
		t.Errorf("jobs reads = %d, want 2", got)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	src := &countingSource{reads: map[string]int{}}
	cached := newCached(t, src)
	loader := content.NewLoader(cached, time.Second, slog.Default())

	s, err := New("@every 1h", cached, loader, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := len(s.cron.Entries()); got != 1 {
		t.Errorf("cron entries = %d, want 1", got)
	}

	s.Stop()
}
