// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/staffsite/internal/model"
)

func TestSitemapBuilder_Homepage(t *testing.T) {
	b := NewSitemapBuilder("https://jobs.example.com/")
	b.AddHomepage()

	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
	if b.urls[0].Loc != "https://jobs.example.com/" || b.urls[0].Priority != "1.0" {
		t.Errorf("homepage = %+v", b.urls[0])
	}
	if b.urls[2].Loc != "https://jobs.example.com/jobs" {
		t.Errorf("jobs listing = %q", b.urls[2].Loc)
	}
}

func TestSitemapBuilder_PostsAndJobs(t *testing.T) {
	published := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	b := NewSitemapBuilder("https://jobs.example.com")
	b.AddPost(model.BlogPost{Slug: "finding-true-pathway", PublishedAt: published})
	b.AddPost(model.BlogPost{Slug: ""})
	b.AddJob(model.Job{ID: "job 1", CreatedAt: created})
	b.AddJob(model.Job{ID: ""})

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if got := b.urls[0]; got.Loc != "https://jobs.example.com/blog/finding-true-pathway" || got.LastMod != "2024-03-02T00:00:00Z" {
		t.Errorf("post entry = %+v", got)
	}
	if got := b.urls[1]; got.Loc != "https://jobs.example.com/jobs/job%201" || got.LastMod != "2024-05-01T12:00:00Z" {
		t.Errorf("job entry = %+v", got)
	}
}

func TestGenerateSitemap(t *testing.T) {
	data, err := GenerateSitemap("https://jobs.example.com",
		[]model.BlogPost{{Slug: "a"}, {Slug: "b"}},
		[]model.Job{{ID: "1"}},
	)
	if err != nil {
		t.Fatalf("GenerateSitemap() error: %v", err)
	}

	out := string(data)
	if !strings.HasPrefix(out, "<?xml") {
		t.Error("missing XML header")
	}
	if !strings.Contains(out, `xmlns="`+XMLNamespace+`"`) {
		t.Error("missing namespace")
	}

	var parsed Sitemap
	if err := xml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	if len(parsed.URLs) != 6 {
		t.Errorf("URL count = %d, want 6", len(parsed.URLs))
	}
}
