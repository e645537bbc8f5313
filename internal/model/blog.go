// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// BlogPost is a single article in the "blog" collection.
// Public lookups address posts by Slug.
type BlogPost struct {
	ID          string    `json:"id"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	PublishedAt time.Time `json:"published_at"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Categories  []string  `json:"categories"`
	Tags        []string  `json:"tags"`
	CreatedBy   string    `json:"created_by"`
}

// RecordID returns the post's unique identifier.
func (p BlogPost) RecordID() string { return p.ID }

// RecordSlug returns the post's routable key.
func (p BlogPost) RecordSlug() string { return p.Slug }

// IsPublished returns true if the post is published.
func (p BlogPost) IsPublished() bool {
	return p.Status == StatusPublished
}

// IsDraft returns true if the post is a draft.
func (p BlogPost) IsDraft() bool {
	return p.Status != StatusPublished
}

// HasPublishedAt reports whether a publication timestamp is set.
func (p BlogPost) HasPublishedAt() bool {
	return !p.PublishedAt.IsZero()
}

// Date returns the requested timestamp, or the zero time when absent.
func (p BlogPost) Date(field DateField) time.Time {
	switch field {
	case FieldPublishedAt:
		return p.PublishedAt
	case FieldCreatedAt:
		return p.CreatedAt
	}
	return time.Time{}
}

// SearchFields returns the text a search term is matched against:
// title, excerpt, every category and every tag.
func (p BlogPost) SearchFields() []string {
	fields := make([]string, 0, 2+len(p.Categories)+len(p.Tags))
	fields = append(fields, p.Title, p.Excerpt)
	fields = append(fields, p.Categories...)
	fields = append(fields, p.Tags...)
	return fields
}

// FacetValues returns the post's values for facet.
// The second result is false when posts do not support the facet.
func (p BlogPost) FacetValues(facet Facet) ([]string, bool) {
	if facet == FacetCategory {
		return p.Categories, true
	}
	return nil, false
}

// MatchFacet reports whether value is one of the post's categories.
// Membership is exact; "HR" does not match "HR Tips".
func (p BlogPost) MatchFacet(facet Facet, value string) bool {
	if facet != FacetCategory {
		return false
	}
	return p.HasCategory(value)
}

// HasCategory reports whether the post is filed under category.
func (p BlogPost) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// RelatedTo reports whether the post shares at least one category with other.
func (p BlogPost) RelatedTo(other BlogPost) bool {
	for _, c := range other.Categories {
		if p.HasCategory(c) {
			return true
		}
	}
	return false
}
