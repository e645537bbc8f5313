// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

// Slugged is a Record addressed publicly by slug.
type Slugged interface {
	Record
	RecordSlug() string
}

// FindBySlug returns the single published record with the given slug.
// It returns ErrNotFound when no published record matches, and also when
// several do: an ambiguous routable key must not silently pick one.
func FindBySlug[T Slugged](records []T, slug string) (T, error) {
	return findOne(records, slug, func(r T) string { return r.RecordSlug() })
}

// FindByID returns the single published record with the given id.
func FindByID[T Record](records []T, id string) (T, error) {
	return findOne(records, id, func(r T) string { return r.RecordID() })
}

func findOne[T Record](records []T, key string, keyOf func(T) string) (T, error) {
	var found T
	if key == "" {
		return found, ErrNotFound
	}

	matches := 0
	for _, r := range records {
		if !r.IsPublished() || keyOf(r) != key {
			continue
		}
		found = r
		matches++
	}

	if matches != 1 {
		var zero T
		return zero, ErrNotFound
	}
	return found, nil
}

// Routable returns the published records FindBySlug can resolve: the slug
// is non-empty, at most maxLen bytes long and not shared with another
// published record. Input order is preserved.
func Routable[T Slugged](records []T, maxLen int) []T {
	published := FilterPublished(records)
	counts := make(map[string]int, len(published))
	for _, r := range published {
		counts[r.RecordSlug()]++
	}

	out := make([]T, 0, len(published))
	for _, r := range published {
		slug := r.RecordSlug()
		if slug == "" || len(slug) > maxLen || counts[slug] != 1 {
			continue
		}
		out = append(out, r)
	}
	return out
}
