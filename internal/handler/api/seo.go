// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/seo"
)

// Sitemap handles GET /sitemap.xml. Only published posts and jobs appear,
// and posts only when their slug resolves to exactly one post.
// A partial sitemap is never served: if either collection fails to load the
// response is 503 so crawlers retry later.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	blog := h.loader.Blog(ctx)
	jobs := h.loader.Jobs(ctx)
	if blog.Stale || jobs.Stale {
		return
	}
	if blog.Failed() || jobs.Failed() {
		http.Error(w, "Sitemap temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	// Only list what the detail endpoints can resolve.
	posts := content.Routable(blog.Records, maxSlugParamLength)
	published := content.FilterPublished(jobs.Records)
	data, err := seo.GenerateSitemap(h.opts.Site.URL, posts, published)
	if err != nil {
		h.logger.Error("failed to build sitemap", "category", "system", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{SiteURL: h.opts.Site.URL})))
}
