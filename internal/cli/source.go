// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/olegiv/staffsite/internal/cache"
	"github.com/olegiv/staffsite/internal/config"
	"github.com/olegiv/staffsite/internal/logging"
	"github.com/olegiv/staffsite/internal/store"
)

// backend is the content source built from configuration, plus the
// resources that must be released with it.
type backend struct {
	Source store.Source

	// DB and Docs are set for the sqlite driver only.
	DB   *sql.DB
	Docs *store.Documents

	// Cached is set when the collection cache is enabled.
	Cached *store.CachedSource

	closers []func() error
}

// Close releases the backend's resources in reverse order.
func (b *backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openBackend builds the configured Source, wrapped in a read-through cache
// when caching is enabled.
func openBackend(cfg *config.Config, logger *slog.Logger) (*backend, error) {
	b := &backend{}

	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := openDatabase(cfg.DBPath, logger)
		if err != nil {
			return nil, err
		}
		b.DB = db
		b.Docs = store.NewDocuments(db)
		b.Source = b.Docs
		b.closers = append(b.closers, db.Close)

	case config.DriverFile:
		b.Source = store.NewFileSource(cfg.ContentDir)
		logger.Info("using file content source", "dir", cfg.ContentDir)

	case config.DriverRemote:
		rs, err := store.NewRemoteSource(store.RemoteOptions{
			BaseURL: cfg.RemoteURL,
			Token:   cfg.RemoteToken,
			Timeout: cfg.LoadTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring remote source: %w", err)
		}
		b.Source = rs
		logger.Info("using remote content source", "url", cfg.RemoteURL)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.CacheEnabled() {
		res, err := cache.New(cache.Config{
			RedisURL:         cfg.RedisURL,
			Prefix:           cfg.CachePrefix,
			FallbackToMemory: true,
			DefaultTTL:       cfg.CacheDuration(),
			MaxSize:          cfg.CacheMaxSize,
		})
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("initializing cache: %w", err)
		}
		if res.IsFallback {
			logger.Warn("redis unavailable, using memory cache",
				"category", logging.CategorySystem,
				"redis_url", cache.SanitizeRedisURL(cfg.RedisURL),
				"error", res.Err)
		}
		cached := store.NewCachedSource(b.Source, res.Cache, cfg.CacheDuration())
		b.Source = cached
		b.Cached = cached
		b.closers = append(b.closers, cached.Close)
		logger.Info("collection cache enabled", "backend", res.Backend, "ttl", cfg.CacheDuration())
	}

	return b, nil
}

// openDatabase opens and migrates the SQLite database, creating its
// directory when needed.
func openDatabase(path string, logger *slog.Logger) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	logger.Info("opening database", "path", path)
	db, err := store.NewDB(path)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// newLogger builds the command logger writing to w.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, *logging.CategoryHandler) {
	return logging.New(cfg.LogLevel, w)
}
