// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging builds the application logger. Records at WARN and above
// are also tallied per "category" attribute so operators can see how often
// collections failed to load or records were skipped.
package logging

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"strings"
	"sync"
)

// Categories used across the application.
const (
	CategoryCollectionUnavailable = "collection_unavailable"
	CategoryMalformedRecord       = "malformed_record"
	CategorySystem                = "system"
)

// ParseLevel maps a configuration string to a slog level. Unknown values
// fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a text logger writing to w at the given level, wrapped in a
// CategoryHandler. The handler is returned so its counts can be reported.
func New(level string, w io.Writer) (*slog.Logger, *CategoryHandler) {
	inner := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	h := NewCategoryHandler(inner)
	return slog.New(h), h
}

// counter holds per-category event counts. It is shared by every handler
// derived from the same CategoryHandler.
type counter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// CategoryHandler is a slog.Handler that forwards to an inner handler and
// counts WARN and ERROR records by category.
type CategoryHandler struct {
	inner    slog.Handler
	counter  *counter
	level    slog.Level
	category string // set through WithAttrs
}

// NewCategoryHandler wraps inner. Records at WARN and above are counted.
func NewCategoryHandler(inner slog.Handler) *CategoryHandler {
	return NewCategoryHandlerWithLevel(inner, slog.LevelWarn)
}

// NewCategoryHandlerWithLevel wraps inner with a custom counting threshold.
func NewCategoryHandlerWithLevel(inner slog.Handler, level slog.Level) *CategoryHandler {
	return &CategoryHandler{
		inner:   inner,
		counter: &counter{counts: make(map[string]int64)},
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *CategoryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *CategoryHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level {
		h.counter.add(h.extractCategory(r))
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *CategoryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	category := h.category
	for _, a := range attrs {
		if a.Key == "category" {
			category = a.Value.String()
		}
	}
	return &CategoryHandler{
		inner:    h.inner.WithAttrs(attrs),
		counter:  h.counter,
		level:    h.level,
		category: category,
	}
}

// WithGroup implements slog.Handler.
func (h *CategoryHandler) WithGroup(name string) slog.Handler {
	return &CategoryHandler{
		inner:    h.inner.WithGroup(name),
		counter:  h.counter,
		level:    h.level,
		category: h.category,
	}
}

// Counts returns a snapshot of the per-category counts.
func (h *CategoryHandler) Counts() map[string]int64 {
	h.counter.mu.Lock()
	defer h.counter.mu.Unlock()
	return maps.Clone(h.counter.counts)
}

// extractCategory reads the "category" attribute of a record, falling back
// to the handler's bound category and then to CategorySystem.
func (h *CategoryHandler) extractCategory(r slog.Record) string {
	category := h.category
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category == "" {
		return CategorySystem
	}
	return category
}

func (c *counter) add(category string) {
	c.mu.Lock()
	c.counts[category]++
	c.mu.Unlock()
}
