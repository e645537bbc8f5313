// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/staffsite/internal/model"
)

func TestRemoteSource_List(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/content/blog":
			_, _ = w.Write([]byte(`[{"id":"1"},{"id":"2"}]`))
		case "/content/jobs":
			_, _ = w.Write([]byte(`{"data":[{"id":"j1"}],"total":1}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewRemoteSource(RemoteOptions{BaseURL: srv.URL + "/content/", Token: "secret", Timeout: time.Second})
	require.NoError(t, err)
	ctx := context.Background()

	blog, err := src.List(ctx, model.CollectionBlog)
	require.NoError(t, err)
	assert.Len(t, blog, 2)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "/content/blog", gotPath)

	jobs, err := src.List(ctx, model.CollectionJobs)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.JSONEq(t, `{"id":"j1"}`, string(jobs[0]))

	unknown, err := src.List(ctx, "events")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestRemoteSource_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blog":
			http.Error(w, "boom", http.StatusBadGateway)
		case "/jobs":
			_, _ = w.Write([]byte(`{"message":"no list here"}`))
		}
	}))
	defer srv.Close()

	src, err := NewRemoteSource(RemoteOptions{BaseURL: srv.URL})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = src.List(ctx, model.CollectionBlog)
	assert.ErrorContains(t, err, "502")

	_, err = src.List(ctx, model.CollectionJobs)
	assert.Error(t, err)

	assert.NoError(t, src.Ping(ctx))
}

func TestRemoteSource_ContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	src, err := NewRemoteSource(RemoteOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = src.List(ctx, model.CollectionBlog)
	assert.Error(t, err)
}

func TestNewRemoteSource_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "ftp://example.com", "https://user:pw@example.com", "https://example.com/?token=1"} {
		_, err := NewRemoteSource(RemoteOptions{BaseURL: u})
		assert.Error(t, err, u)
	}
}
