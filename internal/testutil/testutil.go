// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the staffsite project.
package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/olegiv/staffsite/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a test logger that only outputs errors.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary migrated database. The returned cleanup
// function should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "staffsite-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// Doc marshals v into a raw document, failing the test on error.
func Doc(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	return b
}

// StaticSource is an in-memory store.Source for tests. Setting Err makes
// every List fail; Block makes List wait until its context ends.
type StaticSource struct {
	mu    sync.Mutex
	docs  map[string][]json.RawMessage
	Err   error
	Block bool
	calls atomic.Int64
}

// NewStaticSource creates an empty static source.
func NewStaticSource() *StaticSource {
	return &StaticSource{docs: make(map[string][]json.RawMessage)}
}

// Add appends documents to collection.
func (s *StaticSource) Add(collection string, docs ...json.RawMessage) *StaticSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[collection] = append(s.docs[collection], docs...)
	return s
}

// List implements store.Source.
func (s *StaticSource) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.calls.Add(1)
	if s.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]json.RawMessage, len(s.docs[collection]))
	copy(out, s.docs[collection])
	return out, nil
}

// Calls returns how many times List was called.
func (s *StaticSource) Calls() int {
	return int(s.calls.Load())
}

var _ store.Source = (*StaticSource)(nil)
