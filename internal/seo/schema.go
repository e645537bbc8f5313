// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/olegiv/staffsite/internal/model"
)

// OrgSchema represents a schema.org Organization.
type OrgSchema struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	SameAs string `json:"sameAs,omitempty"`
}

// PersonSchema represents a schema.org Person.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// BlogPostingSchema is JSON-LD for a blog post.
type BlogPostingSchema struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	DateCreated      string        `json:"dateCreated,omitempty"`
	Keywords         string        `json:"keywords,omitempty"`
	ArticleSection   []string      `json:"articleSection,omitempty"`
	MainEntityOfPage string        `json:"mainEntityOfPage"`
	Author           *PersonSchema `json:"author,omitempty"`
	Publisher        *OrgSchema    `json:"publisher,omitempty"`
}

// PlaceSchema represents a job location.
type PlaceSchema struct {
	Type    string         `json:"@type"`
	Address *AddressSchema `json:"address"`
}

// AddressSchema is a free-form postal address.
type AddressSchema struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality"`
}

// JobPostingSchema is JSON-LD for a job posting.
type JobPostingSchema struct {
	Context            string       `json:"@context"`
	Type               string       `json:"@type"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Identifier         string       `json:"identifier"`
	DatePosted         string       `json:"datePosted,omitempty"`
	EmploymentType     string       `json:"employmentType,omitempty"`
	HiringOrganization *OrgSchema   `json:"hiringOrganization"`
	JobLocation        *PlaceSchema `json:"jobLocation,omitempty"`
	URL                string       `json:"url"`
}

// SiteInfo identifies the publishing organisation.
type SiteInfo struct {
	Name string
	URL  string
}

// employmentTypeSchema maps employment types to schema.org values.
var employmentTypeSchema = map[model.EmploymentType]string{
	model.EmploymentPermanent: "FULL_TIME",
	model.EmploymentTemporary: "TEMPORARY",
	model.EmploymentContract:  "CONTRACTOR",
}

// BuildBlogPostingSchema returns JSON-LD for p.
func BuildBlogPostingSchema(p model.BlogPost, site SiteInfo) json.RawMessage {
	siteURL := strings.TrimSuffix(site.URL, "/")
	s := BlogPostingSchema{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		Headline:         p.Title,
		Description:      p.Excerpt,
		DatePublished:    formatSchemaDate(p.PublishedAt),
		DateCreated:      formatSchemaDate(p.CreatedAt),
		Keywords:         strings.Join(p.Tags, ", "),
		ArticleSection:   p.Categories,
		MainEntityOfPage: siteURL + "/blog/" + p.Slug,
		Publisher:        &OrgSchema{Type: "Organization", Name: site.Name, SameAs: siteURL},
	}
	if p.CreatedBy != "" {
		s.Author = &PersonSchema{Type: "Person", Name: p.CreatedBy}
	}
	return marshalJSONLD(s)
}

// BuildJobPostingSchema returns JSON-LD for j. descriptionHTML should be the
// rendered, sanitised description.
func BuildJobPostingSchema(j model.Job, descriptionHTML string, site SiteInfo) json.RawMessage {
	siteURL := strings.TrimSuffix(site.URL, "/")
	s := JobPostingSchema{
		Context:            "https://schema.org",
		Type:               "JobPosting",
		Title:              j.Title,
		Description:        descriptionHTML,
		Identifier:         j.ID,
		DatePosted:         formatSchemaDate(firstNonZero(j.PublishedAt, j.CreatedAt)),
		EmploymentType:     employmentTypeSchema[j.EmploymentType],
		HiringOrganization: &OrgSchema{Type: "Organization", Name: site.Name, SameAs: siteURL},
		URL:                siteURL + "/jobs/" + j.ID,
	}
	if loc := strings.TrimSpace(j.Location); loc != "" {
		s.JobLocation = &PlaceSchema{
			Type:    "Place",
			Address: &AddressSchema{Type: "PostalAddress", AddressLocality: loc},
		}
	}
	return marshalJSONLD(s)
}

func formatSchemaDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func marshalJSONLD(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
