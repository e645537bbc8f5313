// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

// FacetFilter is one facet constraint in a Query.
type FacetFilter struct {
	Facet Facet
	Value string
}

// Query describes a listing view: search term, facet filters, sort and page.
type Query struct {
	Term      string
	Facets    []FacetFilter
	SortField DateField
	Direction Direction
	Page      int // 1-based; values below 1 are treated as 1
	PerPage   int // 0 means unbounded
}

// Page is one slice of a filtered, sorted result set.
type Page[T any] struct {
	Items   []T
	Total   int
	Page    int
	PerPage int
	Pages   int
}

// Apply runs the full public listing pipeline over records:
// published filter, search, facet filters, date sort and pagination.
// The published filter always runs first.
func Apply[T Record](records []T, q Query) Page[T] {
	out := FilterPublished(records)
	out = Search(out, q.Term)
	for _, f := range q.Facets {
		out = FilterByFacet(out, f.Facet, f.Value)
	}
	if q.SortField != "" {
		out = SortByDate(out, q.SortField, q.Direction)
	}
	return Paginate(out, q.Page, q.PerPage)
}

// Paginate returns the requested page of records.
// perPage <= 0 returns every record as a single page. A page past the end
// returns no items but still reports the totals.
func Paginate[T any](records []T, page, perPage int) Page[T] {
	if page < 1 {
		page = 1
	}
	total := len(records)

	if perPage <= 0 {
		return Page[T]{Items: clone(records), Total: total, Page: 1, PerPage: total, Pages: 1}
	}

	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}

	result := Page[T]{Items: make([]T, 0), Total: total, Page: page, PerPage: perPage, Pages: pages}
	start := (page - 1) * perPage
	if start >= total {
		return result
	}
	end := start + perPage
	if end > total {
		end = total
	}
	result.Items = clone(records[start:end])
	return result
}

// Limit returns at most n records from the front of records.
// n <= 0 returns all of them.
func Limit[T any](records []T, n int) []T {
	if n <= 0 || n >= len(records) {
		return clone(records)
	}
	return clone(records[:n])
}
