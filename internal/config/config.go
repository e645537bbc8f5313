// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverRemote = "remote"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Storage
	StoreDriver string        `env:"STAFFSITE_STORE_DRIVER" envDefault:"sqlite"`
	DBPath      string        `env:"STAFFSITE_DB_PATH" envDefault:"./data/staffsite.db"`
	ContentDir  string        `env:"STAFFSITE_CONTENT_DIR" envDefault:"./content"`
	RemoteURL   string        `env:"STAFFSITE_REMOTE_URL"`
	RemoteToken string        `env:"STAFFSITE_REMOTE_TOKEN"`
	LoadTimeout time.Duration `env:"STAFFSITE_LOAD_TIMEOUT" envDefault:"10s"`

	// Server
	ServerHost string `env:"STAFFSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"STAFFSITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"STAFFSITE_ENV" envDefault:"development"`
	LogLevel   string `env:"STAFFSITE_LOG_LEVEL" envDefault:"info"`
	SiteURL    string `env:"STAFFSITE_SITE_URL" envDefault:"http://localhost:8080"`
	SiteName   string `env:"STAFFSITE_SITE_NAME" envDefault:"Staffsite"`

	// Listings
	RelatedLimit int `env:"STAFFSITE_RELATED_LIMIT" envDefault:"3"`
	PerPage      int `env:"STAFFSITE_PER_PAGE" envDefault:"12"`
	MaxPerPage   int `env:"STAFFSITE_MAX_PER_PAGE" envDefault:"100"`

	// Cache configuration
	CacheTTL     int    `env:"STAFFSITE_CACHE_TTL" envDefault:"0"`         // Seconds; 0 disables the collection cache
	CacheMaxSize int    `env:"STAFFSITE_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries
	RedisURL     string `env:"STAFFSITE_REDIS_URL"`                        // Optional Redis URL for a shared cache
	CachePrefix  string `env:"STAFFSITE_CACHE_PREFIX" envDefault:"staffsite:"`
	CacheRefresh string `env:"STAFFSITE_CACHE_REFRESH"` // Cron schedule for refreshing cached collections

	// Rate limiting for /api
	RateLimitRPS   float64 `env:"STAFFSITE_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"STAFFSITE_RATE_LIMIT_BURST" envDefault:"20"`

	// Seeding configuration
	DoSeed bool `env:"STAFFSITE_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// CacheEnabled returns true if the collection cache is switched on.
func (c Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// CacheDuration returns the cache TTL as a duration.
func (c Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.CacheEnabled() && c.RedisURL != ""
}

// LoadDotEnv loads .env files if present. Variables already set in the
// environment win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("STAFFSITE_DB_PATH is required for the sqlite driver")
		}
	case DriverFile:
		if c.ContentDir == "" {
			return fmt.Errorf("STAFFSITE_CONTENT_DIR is required for the file driver")
		}
	case DriverRemote:
		if c.RemoteURL == "" {
			return fmt.Errorf("STAFFSITE_REMOTE_URL is required for the remote driver")
		}
	default:
		return fmt.Errorf("STAFFSITE_STORE_DRIVER must be one of sqlite, file, remote; got %q", c.StoreDriver)
	}

	if c.LoadTimeout <= 0 {
		return fmt.Errorf("STAFFSITE_LOAD_TIMEOUT must be positive, got %s", c.LoadTimeout)
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("STAFFSITE_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.PerPage < 1 {
		return fmt.Errorf("STAFFSITE_PER_PAGE must be at least 1, got %d", c.PerPage)
	}
	if c.MaxPerPage < c.PerPage {
		return fmt.Errorf("STAFFSITE_MAX_PER_PAGE (%d) must not be below STAFFSITE_PER_PAGE (%d)", c.MaxPerPage, c.PerPage)
	}
	if c.RelatedLimit < 1 {
		return fmt.Errorf("STAFFSITE_RELATED_LIMIT must be at least 1, got %d", c.RelatedLimit)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("STAFFSITE_CACHE_TTL must not be negative, got %d", c.CacheTTL)
	}
	if c.CacheRefresh != "" && c.CacheTTL == 0 {
		return fmt.Errorf("STAFFSITE_CACHE_REFRESH requires STAFFSITE_CACHE_TTL to be set")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("STAFFSITE_RATE_LIMIT_RPS and STAFFSITE_RATE_LIMIT_BURST must be positive")
	}
	c.SiteURL = strings.TrimRight(c.SiteURL, "/")
	return nil
}
