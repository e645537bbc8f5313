// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/testutil"
)

// pingSource is a static source whose health check can be made to fail.
type pingSource struct {
	*testutil.StaticSource
	pingErr error
}

func (s pingSource) Ping(context.Context) error { return s.pingErr }

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
		wantCheck  string
	}{
		{"store reachable", nil, http.StatusOK, "ok", "ok"},
		{"store unreachable", errors.New("disk I/O error"), http.StatusServiceUnavailable, "degraded", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := pingSource{StaticSource: testutil.NewStaticSource(), pingErr: tt.pingErr}
			loader := content.NewLoader(src, time.Second, testutil.TestLoggerSilent())
			h := NewHandler(loader, testutil.TestLoggerSilent(), Options{
				Version:   "v1.2.3",
				LogCounts: func() map[string]int64 { return map[string]int64{"collection_unavailable": 2} },
			})
			router := NewRouter(h, RouterConfig{DisableRequestLog: true})

			rec := doGet(t, router, "/health")
			require.Equal(t, tt.wantCode, rec.Code)

			var status HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, tt.wantCheck, status.Checks["store"].Status)
			assert.Equal(t, "v1.2.3", status.Version)
			assert.Equal(t, int64(2), status.LogCounts["collection_unavailable"])
		})
	}
}

func TestHealth_SourceWithoutPing(t *testing.T) {
	router := newTestRouter(testutil.NewStaticSource())

	rec := doGet(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}
