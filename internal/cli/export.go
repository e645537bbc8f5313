// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/transfer"
)

type exportFlags struct {
	out         string
	status      string
	collections []string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export blog posts and jobs as JSON",
		Long: `Export collections from the configured content store as a JSON document
that the import command accepts. Drafts are included unless --status says
otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&flags.status, "status", transfer.StatusAll, "records to export (all|published|draft)")
	cmd.Flags().StringSliceVar(&flags.collections, "collection", nil, "collections to export (blog,jobs); default all")

	return cmd
}

func runExport(opts *RootOptions, cmd *cobra.Command, flags *exportFlags) error {
	if !slices.Contains([]string{transfer.StatusAll, transfer.StatusPublished, transfer.StatusDraft}, flags.status) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid status %q", flags.status))
	}
	for _, c := range flags.collections {
		if !model.KnownCollection(c) {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown collection %q", c))
		}
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, _ := newLogger(cfg, cmd.ErrOrStderr())
	b, err := openBackend(cfg, logger)
	if err != nil {
		return WrapExitError(ExitFailure, "opening content store", err)
	}
	defer func() { _ = b.Close() }()

	exportOpts := transfer.DefaultExportOptions()
	exportOpts.Status = flags.status
	exportOpts.Site = transfer.ExportSite{Name: cfg.SiteName, URL: cfg.SiteURL}
	if len(flags.collections) > 0 {
		exportOpts.Collections = flags.collections
	}

	exporter := transfer.NewExporter(b.Source, logger)
	if flags.out != "" {
		err = exporter.ExportToFile(cmd.Context(), exportOpts, flags.out)
	} else {
		err = exporter.ExportToWriter(cmd.Context(), exportOpts, cmd.OutOrStdout())
	}
	if err != nil {
		return WrapExitError(ExitFailure, "export failed", err)
	}
	if flags.out != "" {
		opts.formatter(cmd).VerboseLog("export written to %s", flags.out)
	}
	return nil
}
