// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/model"
)

const queryDateLayout = "2006-01-02"

type queryFlags struct {
	term     string
	category string
	location string
	jobType  string
	limit    int
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "query <blog|jobs>",
		Short: "List published records the way the API does",
		Long: `Run the listing pipeline against the configured content store: only
published records, optionally searched and filtered, newest first.

Text output is a tab-separated table.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: model.Collections,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.term, "q", "q", "", "search term")
	cmd.Flags().StringVar(&flags.category, "category", "", "blog category (exact)")
	cmd.Flags().StringVar(&flags.location, "location", "", "job location (substring, case-insensitive)")
	cmd.Flags().StringVar(&flags.jobType, "type", "", "job employment type (permanent|temporary|contract)")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "maximum number of records (0 = all)")

	return cmd
}

func runQuery(opts *RootOptions, cmd *cobra.Command, collection string, flags *queryFlags) error {
	if !model.KnownCollection(collection) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("unknown collection %q: must be one of %v", collection, model.Collections))
	}
	if flags.limit < 0 {
		return NewExitError(ExitCommandError, "--limit must not be negative")
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

	loader := content.NewLoader(b.Source, cfg.LoadTimeout, logger)
	out := opts.formatter(cmd)
	ctx := cmd.Context()

	if collection == model.CollectionBlog {
		res := loader.Blog(ctx)
		if res.Failed() {
			return WrapExitError(ExitFailure, "loading blog", res.Err)
		}
		page := content.Apply(res.Records, content.Query{
			Term:      flags.term,
			Facets:    []content.FacetFilter{{Facet: content.FacetCategory, Value: flags.category}},
			SortField: content.FieldPublishedAt,
			PerPage:   flags.limit,
		})
		if out.JSON() {
			return out.Success(page.Items)
		}
		return out.Success(postTable(page))
	}

	res := loader.Jobs(ctx)
	if res.Failed() {
		return WrapExitError(ExitFailure, "loading jobs", res.Err)
	}
	page := content.Apply(res.Records, content.Query{
		Term: flags.term,
		Facets: []content.FacetFilter{
			{Facet: content.FacetLocation, Value: flags.location},
			{Facet: content.FacetEmploymentType, Value: flags.jobType},
		},
		SortField: content.FieldCreatedAt,
		PerPage:   flags.limit,
	})
	if out.JSON() {
		return out.Success(page.Items)
	}
	return out.Success(jobTable(page))
}

func postTable(page content.Page[model.BlogPost]) string {
	var sb strings.Builder
	sb.WriteString("PUBLISHED\tSLUG\tTITLE\tCATEGORIES\n")
	for _, p := range page.Items {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n",
			tableDate(p.PublishedAt), p.Slug, p.Title, strings.Join(p.Categories, ", "))
	}
	fmt.Fprintf(&sb, "%d of %d posts", len(page.Items), page.Total)
	return sb.String()
}

func jobTable(page content.Page[model.Job]) string {
	var sb strings.Builder
	sb.WriteString("POSTED\tID\tTYPE\tLOCATION\tTITLE\n")
	for _, j := range page.Items {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\n",
			tableDate(j.CreatedAt), j.ID, tableValue(string(j.EmploymentType)), j.Location, j.Title)
	}
	fmt.Fprintf(&sb, "%d of %d jobs", len(page.Items), page.Total)
	return sb.String()
}

func tableDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(queryDateLayout)
}

func tableValue(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
