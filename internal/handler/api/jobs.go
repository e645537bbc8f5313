// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/present"
	"github.com/olegiv/staffsite/internal/seo"
)

// maxJobIDLength bounds the id path parameter before any storage access.
const maxJobIDLength = 128

// JobSummary is a job posting as shown in listings.
type JobSummary struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Location            string `json:"location"`
	EmploymentType      string `json:"employment_type"`
	EmploymentTypeLabel string `json:"employment_type_label,omitempty"`
	Salary              string `json:"salary"`
	Summary             string `json:"summary"`
	PostedAt            string `json:"posted_at,omitempty"`
	PostedDisplay       string `json:"posted_display,omitempty"`
}

// JobDetail is a single job posting with rendered description and related
// postings.
type JobDetail struct {
	JobSummary
	DescriptionHTML string          `json:"description_html"`
	Requirements    []string        `json:"requirements"`
	Benefits        []string        `json:"benefits"`
	Related         []JobSummary    `json:"related"`
	StructuredData  json.RawMessage `json:"structured_data,omitempty"`
}

func jobSummary(j model.Job) JobSummary {
	return JobSummary{
		ID:                  j.ID,
		Title:               j.Title,
		Location:            j.Location,
		EmploymentType:      string(j.EmploymentType),
		EmploymentTypeLabel: j.EmploymentType.Label(),
		Salary:              present.SalaryDisplay(j.SalaryRange),
		Summary:             present.Excerpt("", j.Description, excerptLength),
		PostedAt:            formatTime(j.CreatedAt),
		PostedDisplay:       present.FormatDate(j.CreatedAt, ""),
	}
}

func jobSummaries(jobs []model.Job) []JobSummary {
	out := make([]JobSummary, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobSummary(j))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ListJobs handles GET /api/v1/jobs.
// Query parameters: q, location, type, page, per_page.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	res := h.loader.Jobs(r.Context())
	if res.Stale {
		return
	}

	page, perPage := h.pagination(r)
	result := content.Apply(res.Records, content.Query{
		Term: r.URL.Query().Get("q"),
		Facets: []content.FacetFilter{
			{Facet: content.FacetLocation, Value: queryParam(r, "location")},
			{Facet: content.FacetEmploymentType, Value: queryParam(r, "type")},
		},
		SortField: content.FieldCreatedAt,
		Direction: content.Descending,
		Page:      page,
		PerPage:   perPage,
	})

	WriteSuccess(w, jobSummaries(result.Items), pageMeta(result, res.State))
}

// ListLocations handles GET /api/v1/jobs/locations.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	h.listJobFacet(w, r, content.FacetLocation)
}

// ListTypes handles GET /api/v1/jobs/types.
func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	h.listJobFacet(w, r, content.FacetEmploymentType)
}

func (h *Handler) listJobFacet(w http.ResponseWriter, r *http.Request, facet content.Facet) {
	res := h.loader.Jobs(r.Context())
	if res.Stale {
		return
	}

	values := content.UniqueFacetValues(content.FilterPublished(res.Records), facet)
	WriteSuccess(w, values, &Meta{Total: len(values), State: res.State.String()})
}

// GetJob handles GET /api/v1/jobs/{id}.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" || len(id) > maxJobIDLength {
		WriteNotFound(w, "Job not found")
		return
	}

	res := h.loader.Jobs(r.Context())
	if res.Stale {
		return
	}
	if res.Failed() {
		WriteUnavailable(w, model.CollectionJobs)
		return
	}

	job, err := content.FindByID(res.Records, id)
	if err != nil {
		WriteNotFound(w, "Job not found")
		return
	}

	descriptionHTML := present.RenderContent(job.Description)
	WriteSuccess(w, JobDetail{
		JobSummary:      jobSummary(job),
		DescriptionHTML: descriptionHTML,
		Requirements:    nonNil(job.Requirements),
		Benefits:        nonNil(job.Benefits),
		Related:         jobSummaries(content.Related(newestJobs(res.Records), job, h.opts.RelatedLimit)),
		StructuredData:  seo.BuildJobPostingSchema(job, descriptionHTML, h.opts.Site),
	}, nil)
}

// newestJobs returns the published jobs, most recently created first.
func newestJobs(records []model.Job) []model.Job {
	return content.SortByDate(content.FilterPublished(records), content.FieldCreatedAt, content.Descending)
}
