// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/olegiv/staffsite/internal/cache"
)

const cacheKeyPrefix = "collection:"

// CachedSource is a read-through cache in front of another Source. Only
// successful reads are cached, so a failing source is retried by the next
// caller rather than pinned as failed.
type CachedSource struct {
	source Source
	cache  cache.Cache
	typed  *cache.TypedCache[[]json.RawMessage]
}

// NewCachedSource wraps source with c. Entries live for ttl.
func NewCachedSource(source Source, c cache.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  c,
		typed:  cache.NewTypedCache[[]json.RawMessage](c, ttl),
	}
}

// List returns the cached collection or reads it from the wrapped source.
func (s *CachedSource) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	docs, err := s.typed.GetOrSet(ctx, cacheKeyPrefix+collection, func() ([]json.RawMessage, error) {
		return s.source.List(ctx, collection)
	})
	if err != nil {
		return nil, err
	}
	if docs == nil {
		return emptyDocuments(), nil
	}
	return docs, nil
}

// Invalidate drops the cached copy of collection.
func (s *CachedSource) Invalidate(ctx context.Context, collection string) error {
	return s.typed.Delete(ctx, cacheKeyPrefix+collection)
}

// Ping delegates to the wrapped source when it supports health checks.
func (s *CachedSource) Ping(ctx context.Context) error {
	if p, ok := s.source.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the cache.
func (s *CachedSource) Close() error {
	return s.cache.Close()
}

var (
	_ Source = (*CachedSource)(nil)
	_ Pinger = (*CachedSource)(nil)
)
