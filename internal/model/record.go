// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content records served by the site:
// blog posts and job postings, plus the enumerations they share.
package model

import "strings"

// Collection names.
const (
	CollectionBlog = "blog"
	CollectionJobs = "jobs"
)

// Collections lists every collection the site knows about, in display order.
var Collections = []string{CollectionBlog, CollectionJobs}

// KnownCollection reports whether name is one of the site's collections.
func KnownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// Status is the publication state of a record.
type Status string

// Record statuses
const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ParseStatus converts a stored status value to a Status.
// Anything that is not recognisably "published" is treated as a draft,
// so an unexpected value can never expose a record publicly.
func ParseStatus(s string) Status {
	if strings.EqualFold(strings.TrimSpace(s), string(StatusPublished)) {
		return StatusPublished
	}
	return StatusDraft
}

// Facet names a field used for categorical filtering.
type Facet string

// Facets supported by the collections.
const (
	FacetCategory       Facet = "category"       // blog
	FacetLocation       Facet = "location"       // jobs
	FacetEmploymentType Facet = "employmentType" // jobs
)

// DateField names a timestamp field used for sorting.
type DateField string

// Sortable timestamp fields.
const (
	FieldCreatedAt   DateField = "createdAt"
	FieldPublishedAt DateField = "publishedAt"
)

// containsFold reports whether substr is within s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
