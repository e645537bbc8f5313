// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"
)

// HealthStatus represents the service health.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version,omitempty"`
	Checks    map[string]Check `json:"checks"`
	LogCounts map[string]int64 `json:"log_counts,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health. It answers 503 when the content store cannot
// be reached.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.opts.Version,
		Checks:    make(map[string]Check),
	}

	start := time.Now()
	check := Check{Status: "ok"}
	if err := h.loader.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", "category", "system", "check", "store", "error", err)
		check.Status = "error"
		check.Message = "content store unreachable"
		status.Status = "degraded"
	}
	check.Latency = time.Since(start).Round(time.Microsecond).String()
	status.Checks["store"] = check

	if h.opts.LogCounts != nil {
		status.LogCounts = h.opts.LogCounts()
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	WriteJSON(w, code, status)
}
