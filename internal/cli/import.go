// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olegiv/staffsite/internal/config"
	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/store"
	"github.com/olegiv/staffsite/internal/transfer"
)

type importFlags struct {
	dryRun      bool
	overwrite   bool
	collections []string
}

// importSummary is the text rendering of an import result.
type importSummary struct {
	*transfer.ImportResult
}

func (s importSummary) String() string {
	var sb strings.Builder
	if s.DryRun {
		sb.WriteString("dry run, nothing written\n")
	}
	for _, c := range model.Collections {
		fmt.Fprintf(&sb, "%s: %d created, %d updated, %d skipped\n",
			c, s.Created[c], s.Updated[c], s.Skipped[c])
	}
	for _, e := range s.Errors {
		fmt.Fprintf(&sb, "error: %s %s: %s\n", e.Entity, e.ID, e.Message)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import blog posts and jobs into the SQLite store",
		Long: `Import an export file (JSON or YAML) into the SQLite content store.

Records without an id get a generated one; posts without a slug get one
derived from their title. Existing records are skipped unless --overwrite
is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "validate and count without writing")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "replace records whose id already exists")
	cmd.Flags().StringSliceVar(&flags.collections, "collection", nil, "collections to import (blog,jobs); default all")

	return cmd
}

func runImport(opts *RootOptions, cmd *cobra.Command, path string, flags *importFlags) error {
	for _, c := range flags.collections {
		if !model.KnownCollection(c) {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown collection %q", c))
		}
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if cfg.StoreDriver != config.DriverSQLite {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("import requires the sqlite driver, configured driver is %q", cfg.StoreDriver))
	}

	logger, _ := newLogger(cfg, cmd.ErrOrStderr())
	db, err := openDatabase(cfg.DBPath, logger)
	if err != nil {
		return WrapExitError(ExitFailure, "opening database", err)
	}
	defer func() { _ = db.Close() }()

	importOpts := transfer.DefaultImportOptions()
	importOpts.DryRun = flags.dryRun
	if flags.overwrite {
		importOpts.ConflictStrategy = transfer.ConflictOverwrite
	}
	if len(flags.collections) > 0 {
		importOpts.Collections = flags.collections
	}

	importer := transfer.NewImporter(store.NewDocuments(db), logger)
	result, err := importer.ImportFromFile(cmd.Context(), path, importOpts)
	out := opts.formatter(cmd)
	if result != nil {
		if outErr := out.Success(importSummary{result}); outErr != nil {
			return outErr
		}
	}
	if err != nil {
		if errors.Is(err, transfer.ErrValidation) {
			return WrapExitError(ExitFailure, "import rejected", err)
		}
		return WrapExitError(ExitFailure, "import failed", err)
	}
	return nil
}
