// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"strings"
)

// pagination reads page and per_page from the query string. Missing or
// invalid values fall back to the defaults; per_page is capped at
// MaxPerPage.
func (h *Handler) pagination(r *http.Request) (page, perPage int) {
	q := r.URL.Query()

	page = 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}

	perPage = h.opts.PerPage
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil && v > 0 {
		perPage = min(v, h.opts.MaxPerPage)
	}

	return page, perPage
}

// queryParam returns the trimmed value of a query string parameter.
func queryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
