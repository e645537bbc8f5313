// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useFileStore points the configuration at the content fixtures.
func useFileStore(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("STAFFSITE_STORE_DRIVER", "file")
	t.Setenv("STAFFSITE_CONTENT_DIR", dir)
	t.Setenv("STAFFSITE_LOG_LEVEL", "error")
	t.Setenv("STAFFSITE_CACHE_TTL", "0")
}

func TestQueryCommand_Golden(t *testing.T) {
	useFileStore(t, "testdata/content")
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name string
		args []string
	}{
		{"query_blog", []string{"query", "blog"}},
		{"query_blog_category", []string{"query", "blog", "--category", "Career Advice"}},
		{"query_jobs_manchester", []string{"query", "jobs", "--location", "manchester"}},
		{"query_jobs_limit", []string{"query", "jobs", "--limit", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(stdout))
		})
	}
}

func TestQueryCommand_Search(t *testing.T) {
	useFileStore(t, "testdata/content")

	stdout, _, err := execute(t, "query", "blog", "-q", "  INTERVIEW ")
	require.NoError(t, err)
	assert.Contains(t, stdout, "interview-tips")
	assert.NotContains(t, stdout, "first-steps")
	assert.Contains(t, stdout, "1 of 1 posts")
}

func TestQueryCommand_DraftsNeverListed(t *testing.T) {
	useFileStore(t, "testdata/content")

	stdout, _, err := execute(t, "query", "blog", "-q", "salary")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "salary-guide")
	assert.Contains(t, stdout, "0 of 0 posts")

	stdout, _, err = execute(t, "query", "jobs", "--type", "permanent")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Office Manager")
	assert.NotContains(t, stdout, "Site Supervisor")
}

func TestQueryCommand_JSON(t *testing.T) {
	useFileStore(t, "testdata/content")

	stdout, _, err := execute(t, "--format", "json", "query", "jobs", "--type", "temporary")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			ID             string `json:"id"`
			EmploymentType string `json:"employment_type"`
			Location       string `json:"location"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "j1", resp.Data[0].ID)
	assert.Equal(t, "temporary", resp.Data[0].EmploymentType)
	assert.Equal(t, "Manchester", resp.Data[0].Location)
}

func TestQueryCommand_Errors(t *testing.T) {
	t.Run("unknown collection", func(t *testing.T) {
		useFileStore(t, "testdata/content")
		_, _, err := execute(t, "query", "events")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("negative limit", func(t *testing.T) {
		useFileStore(t, "testdata/content")
		_, _, err := execute(t, "query", "jobs", "--limit", "-1")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("missing argument", func(t *testing.T) {
		useFileStore(t, "testdata/content")
		_, _, err := execute(t, "query")
		require.Error(t, err)
	})

	t.Run("unreadable collection", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "blog.json"), []byte(`{"unexpected": true}`), 0o644))
		useFileStore(t, dir)

		_, _, err := execute(t, "query", "blog")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Contains(t, err.Error(), "loading blog")
	})

	t.Run("missing collection file is empty", func(t *testing.T) {
		useFileStore(t, t.TempDir())
		stdout, _, err := execute(t, "query", "jobs")
		require.NoError(t, err)
		assert.Contains(t, stdout, "0 of 0 jobs")
	})
}
