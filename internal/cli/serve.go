// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/handler/api"
	"github.com/olegiv/staffsite/internal/middleware"
	"github.com/olegiv/staffsite/internal/scheduler"
	"github.com/olegiv/staffsite/internal/seo"
	"github.com/olegiv/staffsite/internal/store"
)

const shutdownTimeout = 30 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the JSON API over the configured content store.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts, cmd)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, categories := newLogger(cfg, cmd.OutOrStdout())
	slog.SetDefault(logger)

	b, err := openBackend(cfg, logger)
	if err != nil {
		return WrapExitError(ExitFailure, "opening content store", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Error("error closing content store", "error", err)
		}
	}()

	if cfg.DoSeed {
		if b.Docs == nil {
			logger.Warn("seeding is only supported by the sqlite driver", "driver", cfg.StoreDriver)
		} else if err := store.SeedDemo(ctx, b.Docs, logger); err != nil {
			return WrapExitError(ExitFailure, "seeding database", err)
		}
	}

	loader := content.NewLoader(b.Source, cfg.LoadTimeout, logger)
	handler := api.NewHandler(loader, logger, api.Options{
		PerPage:      cfg.PerPage,
		MaxPerPage:   cfg.MaxPerPage,
		RelatedLimit: cfg.RelatedLimit,
		Site:         seo.SiteInfo{Name: cfg.SiteName, URL: cfg.SiteURL},
		Version:      opts.Info.Version,
		LogCounts:    categories.Counts,
	})

	if cfg.CacheRefresh != "" && b.Cached != nil {
		sched, err := scheduler.New(cfg.CacheRefresh, b.Cached, loader, logger)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid cache refresh schedule", err)
		}
		if err := sched.Start(); err != nil {
			return WrapExitError(ExitFailure, "starting scheduler", err)
		}
		defer sched.Stop()
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	go limiter.Cleanup(ctx, time.Minute, middleware.DefaultMaxLimiters)

	router := api.NewRouter(handler, api.RouterConfig{
		IsDevelopment: cfg.IsDevelopment(),
		RateLimiter:   limiter,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", cfg.ServerAddr(),
			"env", cfg.Env,
			"driver", cfg.StoreDriver,
			"version", opts.Info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return WrapExitError(ExitFailure, "server error", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
