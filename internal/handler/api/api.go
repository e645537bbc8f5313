// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the public JSON API over the blog and jobs
// collections.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/seo"
)

// Default listing and detail limits.
const (
	DefaultPerPage      = 12
	DefaultMaxPerPage   = 100
	DefaultRelatedLimit = 3
	excerptLength       = 200
)

// Options configures a Handler.
type Options struct {
	PerPage      int
	MaxPerPage   int
	RelatedLimit int
	Site         seo.SiteInfo
	Version      string

	// LogCounts reports WARN+ log records per category for /health.
	LogCounts func() map[string]int64
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	loader    *content.Loader
	logger    *slog.Logger
	opts      Options
	startTime time.Time
}

// NewHandler creates a new API handler. Zero options take the defaults.
func NewHandler(loader *content.Loader, logger *slog.Logger, opts Options) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	if opts.MaxPerPage <= 0 {
		opts.MaxPerPage = DefaultMaxPerPage
	}
	if opts.PerPage > opts.MaxPerPage {
		opts.PerPage = opts.MaxPerPage
	}
	if opts.RelatedLimit <= 0 {
		opts.RelatedLimit = DefaultRelatedLimit
	}
	return &Handler{
		loader:    loader,
		logger:    logger,
		opts:      opts,
		startTime: time.Now(),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata and the load state of the collection
// the data came from.
type Meta struct {
	Total   int    `json:"total"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty"`
	Pages   int    `json:"pages,omitempty"`
	State   string `json:"state"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message)
}

// WriteUnavailable writes a 503 response for a collection that could not be
// read.
func WriteUnavailable(w http.ResponseWriter, collection string) {
	WriteError(w, http.StatusServiceUnavailable, "collection_unavailable",
		"The "+collection+" collection is temporarily unavailable")
}

// pageMeta builds list metadata from a page and the load state.
func pageMeta[T any](p content.Page[T], state content.LoadState) *Meta {
	return &Meta{
		Total:   p.Total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Pages:   p.Pages,
		State:   state.String(),
	}
}

// formatTime renders t as RFC 3339 in UTC, or "" when t is zero.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
