// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/present"
	"github.com/olegiv/staffsite/internal/seo"
)

// maxSlugParamLength bounds the slug path parameter before any storage access.
const maxSlugParamLength = 256

// PostSummary is a blog post as shown in listings.
type PostSummary struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Excerpt          string   `json:"excerpt"`
	Categories       []string `json:"categories"`
	Tags             []string `json:"tags"`
	Author           string   `json:"author,omitempty"`
	PublishedAt      string   `json:"published_at,omitempty"`
	PublishedDisplay string   `json:"published_display,omitempty"`
	ReadingTime      int      `json:"reading_time"`
}

// PostDetail is a single blog post with rendered content and related posts.
type PostDetail struct {
	PostSummary
	ContentHTML    string          `json:"content_html"`
	Related        []PostSummary   `json:"related"`
	StructuredData json.RawMessage `json:"structured_data,omitempty"`
}

func postSummary(p model.BlogPost) PostSummary {
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostSummary{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		Excerpt:          present.Excerpt(p.Excerpt, p.Content, excerptLength),
		Categories:       categories,
		Tags:             tags,
		Author:           p.CreatedBy,
		PublishedAt:      formatTime(p.PublishedAt),
		PublishedDisplay: present.FormatDate(p.PublishedAt, ""),
		ReadingTime:      present.ReadingTime(p.Content),
	}
}

func postSummaries(posts []model.BlogPost) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, postSummary(p))
	}
	return out
}

// ListPosts handles GET /api/v1/blog.
// Query parameters: q, category, page, per_page.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	res := h.loader.Blog(r.Context())
	if res.Stale {
		return
	}

	page, perPage := h.pagination(r)
	result := content.Apply(res.Records, content.Query{
		Term: r.URL.Query().Get("q"),
		Facets: []content.FacetFilter{
			{Facet: content.FacetCategory, Value: queryParam(r, "category")},
		},
		SortField: content.FieldPublishedAt,
		Direction: content.Descending,
		Page:      page,
		PerPage:   perPage,
	})

	WriteSuccess(w, postSummaries(result.Items), pageMeta(result, res.State))
}

// ListCategories handles GET /api/v1/blog/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	res := h.loader.Blog(r.Context())
	if res.Stale {
		return
	}

	categories := content.UniqueFacetValues(content.FilterPublished(res.Records), content.FacetCategory)
	WriteSuccess(w, categories, &Meta{Total: len(categories), State: res.State.String()})
}

// GetPost handles GET /api/v1/blog/{slug}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug, err := url.PathUnescape(chi.URLParam(r, "slug"))
	if err != nil || slug == "" || len(slug) > maxSlugParamLength {
		WriteNotFound(w, "Post not found")
		return
	}

	res := h.loader.Blog(r.Context())
	if res.Stale {
		return
	}
	if res.Failed() {
		WriteUnavailable(w, model.CollectionBlog)
		return
	}

	post, err := content.FindBySlug(res.Records, slug)
	if err != nil {
		WriteNotFound(w, "Post not found")
		return
	}

	WriteSuccess(w, PostDetail{
		PostSummary:    postSummary(post),
		ContentHTML:    present.RenderContent(post.Content),
		Related:        postSummaries(content.Related(newestPosts(res.Records), post, h.opts.RelatedLimit)),
		StructuredData: seo.BuildBlogPostingSchema(post, h.opts.Site),
	}, nil)
}

// newestPosts returns the published posts, most recently published first.
func newestPosts(records []model.BlogPost) []model.BlogPost {
	return content.SortByDate(content.FilterPublished(records), content.FieldPublishedAt, content.Descending)
}
