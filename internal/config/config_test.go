// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.StoreDriver != DriverSQLite {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, DriverSQLite)
	}
	if cfg.DBPath != "./data/staffsite.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/staffsite.db")
	}
	if cfg.LoadTimeout != 10*time.Second {
		t.Errorf("LoadTimeout = %s, want 10s", cfg.LoadTimeout)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.RelatedLimit != 3 || cfg.PerPage != 12 || cfg.MaxPerPage != 100 {
		t.Errorf("listing defaults = %d/%d/%d", cfg.RelatedLimit, cfg.PerPage, cfg.MaxPerPage)
	}
	if cfg.CacheEnabled() {
		t.Error("cache should be disabled by default")
	}
	if cfg.DoSeed {
		t.Error("DoSeed should default to false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "STAFFSITE_STORE_DRIVER", "FILE")
	setEnv(t, "STAFFSITE_CONTENT_DIR", "/srv/content")
	setEnv(t, "STAFFSITE_LOAD_TIMEOUT", "2s")
	setEnv(t, "STAFFSITE_SERVER_HOST", "0.0.0.0")
	setEnv(t, "STAFFSITE_SERVER_PORT", "3000")
	setEnv(t, "STAFFSITE_ENV", "production")
	setEnv(t, "STAFFSITE_SITE_URL", "https://jobs.example.com/")
	setEnv(t, "STAFFSITE_CACHE_TTL", "60")
	setEnv(t, "STAFFSITE_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.StoreDriver != DriverFile {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, DriverFile)
	}
	if cfg.ContentDir != "/srv/content" {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.LoadTimeout != 2*time.Second {
		t.Errorf("LoadTimeout = %s", cfg.LoadTimeout)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production")
	}
	if cfg.SiteURL != "https://jobs.example.com" {
		t.Errorf("SiteURL = %q, trailing slash should be trimmed", cfg.SiteURL)
	}
	if !cfg.UseRedisCache() || cfg.CacheDuration() != time.Minute {
		t.Errorf("UseRedisCache = %v, CacheDuration = %s", cfg.UseRedisCache(), cfg.CacheDuration())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "remote without url",
			env:     map[string]string{"STAFFSITE_STORE_DRIVER": "remote"},
			wantErr: "STAFFSITE_REMOTE_URL",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"STAFFSITE_STORE_DRIVER": "mongo"},
			wantErr: "STAFFSITE_STORE_DRIVER",
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"STAFFSITE_LOAD_TIMEOUT": "0s"},
			wantErr: "STAFFSITE_LOAD_TIMEOUT",
		},
		{
			name:    "bad port",
			env:     map[string]string{"STAFFSITE_SERVER_PORT": "70000"},
			wantErr: "STAFFSITE_SERVER_PORT",
		},
		{
			name:    "max per page below per page",
			env:     map[string]string{"STAFFSITE_PER_PAGE": "50", "STAFFSITE_MAX_PER_PAGE": "10"},
			wantErr: "STAFFSITE_MAX_PER_PAGE",
		},
		{
			name:    "negative cache ttl",
			env:     map[string]string{"STAFFSITE_CACHE_TTL": "-1"},
			wantErr: "STAFFSITE_CACHE_TTL",
		},
		{
			name:    "related limit zero",
			env:     map[string]string{"STAFFSITE_RELATED_LIMIT": "0"},
			wantErr: "STAFFSITE_RELATED_LIMIT",
		},
		{
			name:    "cache refresh without cache",
			env:     map[string]string{"STAFFSITE_CACHE_REFRESH": "*/5 * * * *"},
			wantErr: "STAFFSITE_CACHE_REFRESH",
		},
		{
			name:    "unparsable duration",
			env:     map[string]string{"STAFFSITE_LOAD_TIMEOUT": "soon"},
			wantErr: "parsing config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				setEnv(t, k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	os.Clearenv()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("STAFFSITE_SERVER_PORT=9090\nSTAFFSITE_ENV=staging\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	setEnv(t, "STAFFSITE_ENV", "production")

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want 9090", cfg.ServerPort)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, existing variables must not be overridden", cfg.Env)
	}
}
