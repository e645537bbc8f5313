// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/staffsite/internal/content"
	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/seo"
	"github.com/olegiv/staffsite/internal/store"
	"github.com/olegiv/staffsite/internal/testutil"
)

var testSite = seo.SiteInfo{Name: "Pathway Recruitment", URL: "https://jobs.example.com"}

// fixtureSource returns a source holding four posts (one draft) and four
// jobs (one draft).
func fixtureSource(t *testing.T) *testutil.StaticSource {
	t.Helper()

	src := testutil.NewStaticSource()
	src.Add(model.CollectionBlog,
		testutil.Doc(t, map[string]any{
			"id": "p1", "status": "published", "title": "Finding True Pathway",
			"slug": "finding-true-pathway", "content": "Know your strengths.\nThen apply.",
			"categories": []string{"Career Advice"}, "tags": []string{"careers"},
			"createdBy": "Team", "publishedAt": "2024-03-01T09:00:00Z",
		}),
		testutil.Doc(t, map[string]any{
			"id": "p2", "status": "published", "title": "Interview Tips",
			"slug": "interview-tips", "content": "Prepare questions.",
			"categories": []string{"Career Advice", "Interviews"},
			"publishedAt": "2024-04-01T09:00:00Z",
		}),
		testutil.Doc(t, map[string]any{
			"id": "p3", "status": "published", "title": "Hiring Temporary Staff",
			"slug": "hiring-temporary-staff", "content": "Cover for busy seasons.",
			"categories": []string{"Employers"},
			"publishedAt": "2024-02-01T09:00:00Z",
		}),
		testutil.Doc(t, map[string]any{
			"id": "p4", "status": "draft", "title": "Salary Guide",
			"slug": "salary-guide", "content": "Draft.",
			"categories": []string{"Career Advice"},
		}),
	)
	src.Add(model.CollectionJobs,
		testutil.Doc(t, map[string]any{
			"id": "j1", "status": "published", "title": "Warehouse Operative",
			"location": "Manchester", "employmentType": "temporary",
			"salaryRange": "£12 per hour", "description": "Picking and packing.",
			"requirements": []string{"Flexible shifts"}, "createdAt": "2024-05-03T00:00:00Z",
		}),
		testutil.Doc(t, map[string]any{
			"id": "j2", "status": "published", "title": "Office Administrator",
			"location": "Greater Manchester", "employmentType": "permanent",
			"description": "Scheduling and records.", "createdAt": "2024-05-05T00:00:00Z",
		}),
		testutil.Doc(t, map[string]any{
			"id": "j3", "status": "published", "title": "Project Accountant",
			"location": "Leeds", "employmentType": "contract",
			"description": "Finance transformation.", "createdAt": "2024-05-01T00:00:00Z",
		}),
		testutil.Doc(t, map[string]any{
			"id": "j4", "status": "draft", "title": "Forklift Driver",
			"location": "Leeds", "employmentType": "temporary",
			"description": "Awaiting approval.", "createdAt": "2024-05-06T00:00:00Z",
		}),
	)
	return src
}

func newTestHandler(src store.Source) *Handler {
	loader := content.NewLoader(src, time.Second, testutil.TestLoggerSilent())
	return NewHandler(loader, testutil.TestLoggerSilent(), Options{
		PerPage:    10,
		MaxPerPage: 20,
		Site:       testSite,
		Version:    "test",
	})
}

func newTestRouter(src store.Source) http.Handler {
	return NewRouter(newTestHandler(src), RouterConfig{IsDevelopment: true, DisableRequestLog: true})
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// listResponse decodes a list envelope with items of type T.
type listResponse[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

type detailResponse[T any] struct {
	Data T `json:"data"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
