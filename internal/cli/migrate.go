// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olegiv/staffsite/internal/config"
	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/store"
)

// MigrateResult reports the state of the database after migration.
type MigrateResult struct {
	Path   string           `json:"path"`
	Counts map[string]int64 `json:"counts"`
	Seeded bool             `json:"seeded"`
}

func (r MigrateResult) String() string {
	s := fmt.Sprintf("database ready: %s", r.Path)
	for _, c := range model.Collections {
		s += fmt.Sprintf("\n  %s: %d", c, r.Counts[c])
	}
	return s
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the SQLite content store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, cmd, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert demo content into empty collections")

	return cmd
}

func runMigrate(opts *RootOptions, cmd *cobra.Command, seed bool) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if cfg.StoreDriver != config.DriverSQLite {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("migrate requires the sqlite driver, configured driver is %q", cfg.StoreDriver))
	}

	logger, _ := newLogger(cfg, cmd.ErrOrStderr())
	db, err := openDatabase(cfg.DBPath, logger)
	if err != nil {
		return WrapExitError(ExitFailure, "migrating database", err)
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()
	docs := store.NewDocuments(db)
	if seed || cfg.DoSeed {
		if err := store.SeedDemo(ctx, docs, logger); err != nil {
			return WrapExitError(ExitFailure, "seeding database", err)
		}
	}

	result := MigrateResult{Path: cfg.DBPath, Counts: make(map[string]int64), Seeded: seed || cfg.DoSeed}
	for _, c := range model.Collections {
		n, err := docs.Count(ctx, c)
		if err != nil {
			return WrapExitError(ExitFailure, "counting documents", err)
		}
		result.Counts[c] = n
	}

	return opts.formatter(cmd).Success(result)
}
