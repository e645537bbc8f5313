// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the read-side query engine for the site's
// content collections: published-only filtering, text search, facets,
// date sorting, relatedness and key lookups.
//
// Every function is pure. Inputs are never modified; results are new slices.
package content

import (
	"sort"
	"strings"
	"time"

	"github.com/olegiv/staffsite/internal/model"
)

// Facet and DateField are shared with the model package.
type (
	Facet     = model.Facet
	DateField = model.DateField
)

// Facets and date fields understood by the engine.
const (
	FacetCategory       = model.FacetCategory
	FacetLocation       = model.FacetLocation
	FacetEmploymentType = model.FacetEmploymentType

	FieldCreatedAt   = model.FieldCreatedAt
	FieldPublishedAt = model.FieldPublishedAt
)

// Direction is a sort order.
type Direction int

// Sort directions. Descending (newest first) is the default.
const (
	Descending Direction = iota
	Ascending
)

// Record is the read surface every collection record exposes to the engine.
type Record interface {
	RecordID() string
	IsPublished() bool
	// Date returns the timestamp for field, or the zero time when absent.
	Date(field DateField) time.Time
	// SearchFields returns the collection-specific text matched by Search.
	SearchFields() []string
	// FacetValues returns the record's values for facet; ok is false
	// when the record kind does not define the facet.
	FacetValues(facet Facet) (values []string, ok bool)
	MatchFacet(facet Facet, value string) bool
}

// FilterPublished keeps only published records.
// It must run before anything is shown publicly.
func FilterPublished[T Record](records []T) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.IsPublished() {
			out = append(out, r)
		}
	}
	return out
}

// Search keeps records where any search field contains term, ignoring case.
// An empty or blank term returns the input unchanged (as a copy).
func Search[T Record](records []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return clone(records)
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if matchesTerm(r, term) {
			out = append(out, r)
		}
	}
	return out
}

// matchesTerm reports whether any of the record's search fields contains
// the already lower-cased term.
func matchesTerm(r Record, term string) bool {
	for _, field := range r.SearchFields() {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FilterByFacet keeps records matching value for facet.
// An empty value, or a facet the records do not define, is a no-op.
func FilterByFacet[T Record](records []T, facet Facet, value string) []T {
	if value == "" || len(records) == 0 {
		return clone(records)
	}
	if _, ok := records[0].FacetValues(facet); !ok {
		return clone(records)
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.MatchFacet(facet, value) {
			out = append(out, r)
		}
	}
	return out
}

// SortByDate returns records ordered by the given timestamp field.
// The sort is stable: records with equal timestamps keep their input order.
// Records without the timestamp sort as the oldest.
func SortByDate[T Record](records []T, field DateField, direction Direction) []T {
	out := clone(records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date(field), out[j].Date(field)
		if direction == Ascending {
			return a.Before(b)
		}
		return a.After(b)
	})
	return out
}

// UniqueFacetValues returns the distinct non-empty values of facet across
// records, sorted ascending.
func UniqueFacetValues[T Record](records []T, facet Facet) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, r := range records {
		vals, ok := r.FacetValues(facet)
		if !ok {
			continue
		}
		for _, v := range vals {
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

func clone[T any](records []T) []T {
	out := make([]T, len(records))
	copy(out, records)
	return out
}
