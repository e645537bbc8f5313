// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/store"
)

// Exporter reads collections from any Source into an ExportData.
type Exporter struct {
	source store.Source
	logger *slog.Logger
}

// NewExporter creates a new Exporter instance.
func NewExporter(source store.Source, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{source: source, logger: logger}
}

// Export collects the requested collections in storage order.
func (e *Exporter) Export(ctx context.Context, opts ExportOptions) (*ExportData, error) {
	collections := opts.Collections
	if len(collections) == 0 {
		collections = model.Collections
	}

	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Site:       opts.Site,
	}

	for _, collection := range collections {
		if !model.KnownCollection(collection) {
			return nil, fmt.Errorf("exporting %q: unknown collection", collection)
		}
		docs, err := e.source.List(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", collection, err)
		}
		docs = filterStatus(docs, opts.Status)
		data.setDocuments(collection, docs)
		e.logger.Debug("exported collection", "collection", collection, "count", len(docs))
	}

	return data, nil
}

// filterStatus keeps documents whose status matches. Anything but an
// explicit "published" counts as draft.
func filterStatus(docs []json.RawMessage, status string) []json.RawMessage {
	if status == "" || status == StatusAll {
		return docs
	}
	out := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		s := model.ParseStatus(gjson.GetBytes(doc, "status").String())
		if string(s) == status {
			out = append(out, doc)
		}
	}
	return out
}

// ExportToWriter writes the export as JSON to the provided writer.
func (e *Exporter) ExportToWriter(ctx context.Context, opts ExportOptions, w io.Writer) error {
	data, err := e.Export(ctx, opts)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportToFile writes the export as JSON to a file.
func (e *Exporter) ExportToFile(ctx context.Context, opts ExportOptions, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return e.ExportToWriter(ctx, opts, f)
}
