// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/staffsite/internal/middleware"
	"github.com/olegiv/staffsite/internal/testutil"
)

func TestRouter_NotFoundAndMethod(t *testing.T) {
	router := newTestRouter(fixtureSource(t))

	rec := doGet(t, router, "/api/v1/pages")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[ErrorResponse](t, rec).Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", decode[ErrorResponse](t, rec).Error.Code)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter(fixtureSource(t))

	rec := doGet(t, router, "/api/v1/jobs")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRouter_HeadRequest(t *testing.T) {
	router := newTestRouter(fixtureSource(t))

	req := httptest.NewRequest(http.MethodHead, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimitAppliesToAPIOnly(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 1, testutil.TestLoggerSilent())
	router := NewRouter(newTestHandler(fixtureSource(t)), RouterConfig{
		RateLimiter:       limiter,
		DisableRequestLog: true,
	})

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.1:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, get("/api/v1/blog"))
	assert.Equal(t, http.StatusTooManyRequests, get("/api/v1/blog"))
	assert.Equal(t, http.StatusOK, get("/health"))
}
