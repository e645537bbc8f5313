// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler-facing documents: sitemap.xml, robots.txt
// and schema.org structured data for posts and jobs.
package seo

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/staffsite/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder collects sitemap entries for a site.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the homepage and the two listing pages.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls,
		SitemapURL{Loc: b.siteURL + "/", ChangeFreq: ChangeFreqDaily, Priority: "1.0"},
		SitemapURL{Loc: b.siteURL + "/blog", ChangeFreq: ChangeFreqDaily, Priority: "0.8"},
		SitemapURL{Loc: b.siteURL + "/jobs", ChangeFreq: ChangeFreqDaily, Priority: "0.9"},
	)
}

// AddPost adds a blog post at /blog/{slug}. Posts without a slug are skipped.
func (b *SitemapBuilder) AddPost(p model.BlogPost) {
	if p.Slug == "" {
		return
	}
	b.add("/blog/"+url.PathEscape(p.Slug), firstNonZero(p.PublishedAt, p.CreatedAt), ChangeFreqMonthly, "0.6")
}

// AddJob adds a job posting at /jobs/{id}.
func (b *SitemapBuilder) AddJob(j model.Job) {
	if j.ID == "" {
		return
	}
	b.add("/jobs/"+url.PathEscape(j.ID), firstNonZero(j.PublishedAt, j.CreatedAt), ChangeFreqWeekly, "0.7")
}

func (b *SitemapBuilder) add(path string, lastMod time.Time, freq ChangeFreq, priority string) {
	u := SitemapURL{Loc: b.siteURL + path, ChangeFreq: freq, Priority: priority}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// Len returns the number of collected URLs.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds a sitemap for the given records. Callers pass
// published records only.
func GenerateSitemap(siteURL string, posts []model.BlogPost, jobs []model.Job) ([]byte, error) {
	b := NewSitemapBuilder(siteURL)
	b.AddHomepage()
	for _, p := range posts {
		b.AddPost(p)
	}
	for _, j := range jobs {
		b.AddJob(j)
	}
	return b.Build()
}

func firstNonZero(times ...time.Time) time.Time {
	for _, t := range times {
		if !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}
