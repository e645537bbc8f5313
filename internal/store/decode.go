// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/olegiv/staffsite/internal/model"
)

// timeLayouts are the timestamp formats accepted in stored documents.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DecodeBlog converts raw documents into blog posts.
//
// Decoding is forgiving: a document that is not a JSON object or has no id
// is skipped with a warning, missing lists become empty, and a missing or
// unrecognised status makes the post a draft. One bad document never
// fails the whole collection.
func DecodeBlog(docs []json.RawMessage, logger *slog.Logger) []model.BlogPost {
	if logger == nil {
		logger = slog.Default()
	}
	posts := make([]model.BlogPost, 0, len(docs))
	for i, doc := range docs {
		r, ok := parseDocument(doc, model.CollectionBlog, i, logger)
		if !ok {
			continue
		}
		posts = append(posts, model.BlogPost{
			ID:          r.Get("id").String(),
			Status:      model.ParseStatus(r.Get("status").String()),
			CreatedAt:   parseTime(r.Get("createdAt")),
			PublishedAt: parseTime(r.Get("publishedAt")),
			Title:       r.Get("title").String(),
			Slug:        strings.TrimSpace(r.Get("slug").String()),
			Excerpt:     r.Get("excerpt").String(),
			Content:     r.Get("content").String(),
			Categories:  stringList(r.Get("categories")),
			Tags:        stringList(r.Get("tags")),
			CreatedBy:   r.Get("createdBy").String(),
		})
	}
	return posts
}

// DecodeJobs converts raw documents into job postings, with the same
// forgiving rules as DecodeBlog.
func DecodeJobs(docs []json.RawMessage, logger *slog.Logger) []model.Job {
	if logger == nil {
		logger = slog.Default()
	}
	jobs := make([]model.Job, 0, len(docs))
	for i, doc := range docs {
		r, ok := parseDocument(doc, model.CollectionJobs, i, logger)
		if !ok {
			continue
		}

		rawType := r.Get("employmentType").String()
		employmentType := model.ParseEmploymentType(rawType)
		if employmentType == "" && rawType != "" {
			logger.Warn("unknown employment type",
				"category", "malformed_record",
				"collection", model.CollectionJobs,
				"id", r.Get("id").String(),
				"employment_type", rawType)
		}

		jobs = append(jobs, model.Job{
			ID:             r.Get("id").String(),
			Status:         model.ParseStatus(r.Get("status").String()),
			CreatedAt:      parseTime(r.Get("createdAt")),
			PublishedAt:    parseTime(r.Get("publishedAt")),
			Title:          r.Get("title").String(),
			Location:       strings.TrimSpace(r.Get("location").String()),
			EmploymentType: employmentType,
			SalaryRange:    r.Get("salaryRange").String(),
			Description:    r.Get("description").String(),
			Requirements:   stringList(r.Get("requirements")),
			Benefits:       stringList(r.Get("benefits")),
		})
	}
	return jobs
}

// parseDocument validates a raw document and returns its parsed form.
// ok is false when the document must be skipped.
func parseDocument(doc json.RawMessage, collection string, index int, logger *slog.Logger) (gjson.Result, bool) {
	if !gjson.ValidBytes(doc) {
		logger.Warn("skipping invalid document",
			"category", "malformed_record", "collection", collection, "index", index)
		return gjson.Result{}, false
	}

	r := gjson.ParseBytes(doc)
	if !r.IsObject() {
		logger.Warn("skipping non-object document",
			"category", "malformed_record", "collection", collection, "index", index)
		return gjson.Result{}, false
	}

	if strings.TrimSpace(r.Get("id").String()) == "" {
		logger.Warn("skipping document without id",
			"category", "malformed_record", "collection", collection, "index", index)
		return gjson.Result{}, false
	}

	return r, true
}

// parseTime reads a timestamp in any accepted layout. Unix seconds are
// also accepted. Anything else yields the zero time.
func parseTime(v gjson.Result) time.Time {
	switch v.Type {
	case gjson.Number:
		return time.Unix(v.Int(), 0).UTC()
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// stringList reads a list of strings. A single string is treated as a
// one-element list; empty entries are dropped; absent values yield an
// empty list.
func stringList(v gjson.Result) []string {
	out := make([]string, 0)
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
		}
	case v.Type == gjson.String:
		if s := strings.TrimSpace(v.Str); s != "" {
			out = append(out, s)
		}
	}
	return out
}
