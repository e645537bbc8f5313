// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/staffsite/internal/middleware"
)

// DefaultRequestTimeout bounds the handling of a single request.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig configures the HTTP router.
type RouterConfig struct {
	IsDevelopment  bool
	RequestTimeout time.Duration

	// RateLimiter limits /api requests per client. Nil disables it.
	RateLimiter *middleware.RateLimiter

	// DisableRequestLog turns off chi's request logger (tests).
	DisableRequestLog bool
}

// NewRouter builds the HTTP router with the full middleware stack.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if !cfg.DisableRequestLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))

	r.Get("/health", h.Health)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware())
		}
		h.Routes(r)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	})

	return r
}

// Routes registers the collection endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/blog", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Get("/categories", h.ListCategories)
		r.Get("/{slug}", h.GetPost)
	})
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.ListJobs)
		r.Get("/locations", h.ListLocations)
		r.Get("/types", h.ListTypes)
		r.Get("/{id}", h.GetJob)
	})
}
