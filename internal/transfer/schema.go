// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer provides import/export of the blog and jobs collections.
package transfer

import (
	"encoding/json"
	"time"

	"github.com/olegiv/staffsite/internal/model"
)

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// ExportData represents the complete export structure. Records are kept as
// raw documents so fields this version does not model survive a round trip.
type ExportData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Site       ExportSite        `json:"site,omitzero"`
	Blog       []json.RawMessage `json:"blog,omitempty"`
	Jobs       []json.RawMessage `json:"jobs,omitempty"`
}

// ExportSite contains basic site information.
type ExportSite struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Documents returns the records held for collection.
func (d *ExportData) Documents(collection string) []json.RawMessage {
	switch collection {
	case model.CollectionBlog:
		return d.Blog
	case model.CollectionJobs:
		return d.Jobs
	}
	return nil
}

func (d *ExportData) setDocuments(collection string, docs []json.RawMessage) {
	switch collection {
	case model.CollectionBlog:
		d.Blog = docs
	case model.CollectionJobs:
		d.Jobs = docs
	}
}

// Status filters for export.
const (
	StatusAll       = "all"
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// ExportOptions configures what to include in the export.
type ExportOptions struct {
	Collections []string   `json:"collections"`
	Status      string     `json:"status"` // "all", "published", "draft"
	Site        ExportSite `json:"site"`
}

// DefaultExportOptions returns options that include everything.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Collections: model.Collections,
		Status:      StatusAll,
	}
}

// ConflictStrategy decides what happens when an imported record's id
// already exists.
type ConflictStrategy string

const (
	ConflictSkip      ConflictStrategy = "skip"
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions configures an import.
type ImportOptions struct {
	DryRun           bool
	ConflictStrategy ConflictStrategy
	Collections      []string
}

// DefaultImportOptions returns options that import every collection and
// skip existing records.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		ConflictStrategy: ConflictSkip,
		Collections:      model.Collections,
	}
}

// ImportError describes one record that could not be imported.
type ImportError struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ImportResult reports per-collection counts of an import.
type ImportResult struct {
	Success bool           `json:"success"`
	DryRun  bool           `json:"dry_run"`
	Created map[string]int `json:"created"`
	Updated map[string]int `json:"updated"`
	Skipped map[string]int `json:"skipped"`
	Errors  []ImportError  `json:"errors,omitempty"`
}

// NewImportResult creates an empty, successful result.
func NewImportResult(dryRun bool) *ImportResult {
	return &ImportResult{
		Success: true,
		DryRun:  dryRun,
		Created: make(map[string]int),
		Updated: make(map[string]int),
		Skipped: make(map[string]int),
	}
}

func (r *ImportResult) IncrementCreated(collection string) { r.Created[collection]++ }
func (r *ImportResult) IncrementUpdated(collection string) { r.Updated[collection]++ }
func (r *ImportResult) IncrementSkipped(collection string) { r.Skipped[collection]++ }

// AddError records a failed record and marks the result unsuccessful.
func (r *ImportResult) AddError(entity, id, message string) {
	r.Success = false
	r.Errors = append(r.Errors, ImportError{Entity: entity, ID: id, Message: message})
}

func (r *ImportResult) TotalCreated() int { return total(r.Created) }
func (r *ImportResult) TotalUpdated() int { return total(r.Updated) }
func (r *ImportResult) TotalSkipped() int { return total(r.Skipped) }

func total(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
