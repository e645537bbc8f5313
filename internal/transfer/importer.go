// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/store"
	"github.com/olegiv/staffsite/internal/util"
)

// ErrValidation is returned when import data fails validation.
var ErrValidation = errors.New("validation failed")

// Importer writes exported collections into the SQLite document store.
type Importer struct {
	docs   *store.Documents
	logger *slog.Logger
}

// NewImporter creates a new Importer instance.
func NewImporter(docs *store.Documents, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{docs: docs, logger: logger}
}

// Import validates data and stores the selected collections. Invalid data
// is rejected before anything is written. With DryRun set nothing is
// written but the counts reflect what would happen.
func (i *Importer) Import(ctx context.Context, data *ExportData, opts ImportOptions) (*ImportResult, error) {
	result := NewImportResult(opts.DryRun)
	if opts.ConflictStrategy == "" {
		opts.ConflictStrategy = ConflictSkip
	}
	collections := opts.Collections
	if len(collections) == 0 {
		collections = model.Collections
	}

	if errs := i.Validate(data, collections); len(errs) > 0 {
		for _, e := range errs {
			result.AddError(e.Entity, e.ID, e.Message)
		}
		return result, ErrValidation
	}

	for _, collection := range collections {
		for idx, doc := range data.Documents(collection) {
			rec, err := normalizeRecord(doc, collection)
			if err != nil {
				// Validate already rejected these.
				result.AddError(collection, strconv.Itoa(idx), err.Error())
				continue
			}
			if err := i.importRecord(ctx, collection, rec, opts, result); err != nil {
				return result, err
			}
		}
		i.logger.Info("imported collection",
			"collection", collection,
			"created", result.Created[collection],
			"updated", result.Updated[collection],
			"skipped", result.Skipped[collection],
			"dry_run", opts.DryRun)
	}

	return result, nil
}

func (i *Importer) importRecord(ctx context.Context, collection string, rec normalized, opts ImportOptions, result *ImportResult) error {
	exists, err := i.docs.Exists(ctx, collection, rec.id)
	if err != nil {
		return fmt.Errorf("checking %s/%s: %w", collection, rec.id, err)
	}

	if exists && opts.ConflictStrategy == ConflictSkip {
		result.IncrementSkipped(collection)
		return nil
	}

	if !opts.DryRun {
		if _, err := i.docs.Put(ctx, collection, rec.id, rec.body); err != nil {
			return err
		}
	}

	if exists {
		result.IncrementUpdated(collection)
	} else {
		result.IncrementCreated(collection)
	}
	return nil
}

// Validate checks data without making changes.
func (i *Importer) Validate(data *ExportData, collections []string) []ImportError {
	var importErrors []ImportError

	if data.Version == "" {
		importErrors = append(importErrors, ImportError{
			Entity:  "export",
			Message: "missing version field",
		})
	}

	for _, collection := range collections {
		if !model.KnownCollection(collection) {
			importErrors = append(importErrors, ImportError{
				Entity:  "export",
				ID:      collection,
				Message: "unknown collection",
			})
			continue
		}

		seen := make(map[string]int)
		for idx, doc := range data.Documents(collection) {
			rec, err := normalizeRecord(doc, collection)
			if err != nil {
				importErrors = append(importErrors, ImportError{
					Entity:  collection,
					ID:      strconv.Itoa(idx),
					Message: err.Error(),
				})
				continue
			}
			if prev, dup := seen[rec.id]; dup {
				importErrors = append(importErrors, ImportError{
					Entity:  collection,
					ID:      rec.id,
					Message: fmt.Sprintf("duplicate id (first at record %d)", prev),
				})
				continue
			}
			seen[rec.id] = idx
		}
	}

	return importErrors
}

// ImportFromReader reads JSON or YAML export data and imports it.
func (i *Importer) ImportFromReader(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import data: %w", err)
	}
	data, err := ParseExportData(raw)
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, data, opts)
}

// ImportFromFile reads and imports from a file path.
func (i *Importer) ImportFromFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return i.ImportFromReader(ctx, f, opts)
}

// ParseExportData decodes an export document. JSON is tried first; YAML
// is accepted as well and converted to the same shape.
func ParseExportData(raw []byte) (*ExportData, error) {
	var data ExportData

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &data); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return &data, nil
	}

	var root any
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if _, ok := root.(map[string]any); !ok {
		return nil, errors.New("import data must be a mapping with version, blog and jobs")
	}
	converted, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("converting YAML: %w", err)
	}
	if err := json.Unmarshal(converted, &data); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &data, nil
}

// normalized is a record ready to store.
type normalized struct {
	id   string
	body json.RawMessage
}

// normalizeRecord fills in what an imported record may omit: a uuid id and,
// for posts, a slug derived from the title.
func normalizeRecord(doc json.RawMessage, collection string) (normalized, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return normalized{}, errors.New("record is not an object")
	}

	id := idString(fields["id"])
	if id == "" {
		id = uuid.NewString()
	}
	fields["id"] = id

	if collection == model.CollectionBlog {
		slug := strings.TrimSpace(stringField(fields, "slug"))
		if slug == "" {
			slug = util.Slugify(stringField(fields, "title"))
		}
		if slug == "" {
			return normalized{}, errors.New("post has neither slug nor title")
		}
		if !util.IsValidSlug(slug) {
			return normalized{}, fmt.Errorf("invalid slug %q", slug)
		}
		fields["slug"] = slug
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return normalized{}, fmt.Errorf("encoding record: %w", err)
	}
	return normalized{id: id, body: body}, nil
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	}
	return ""
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
