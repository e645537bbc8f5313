// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/staffsite/internal/model"
)

type seedDoc map[string]any

func demoBlog(now time.Time) []seedDoc {
	day := 24 * time.Hour
	return []seedDoc{
		{
			"id":          "post-pathway",
			"status":      "published",
			"title":       "Finding True Pathway",
			"slug":        "finding-true-pathway",
			"excerpt":     "How to find the role that fits your strengths.",
			"content":     "Career moves start with knowing what you enjoy.\nWe help you map that to real roles.",
			"categories":  []string{"Career Advice"},
			"tags":        []string{"careers", "guidance"},
			"createdBy":   "Recruitment Team",
			"createdAt":   now.Add(-30 * day).Format(time.RFC3339),
			"publishedAt": now.Add(-28 * day).Format(time.RFC3339),
		},
		{
			"id":          "post-interview",
			"status":      "published",
			"title":       "Preparing for Your First Interview",
			"slug":        "preparing-for-your-first-interview",
			"excerpt":     "Simple steps that make a strong first impression.",
			"content":     "Research the company.\nPrepare two questions of your own.",
			"categories":  []string{"Career Advice", "Interviews"},
			"tags":        []string{"interview"},
			"createdBy":   "Recruitment Team",
			"createdAt":   now.Add(-14 * day).Format(time.RFC3339),
			"publishedAt": now.Add(-12 * day).Format(time.RFC3339),
		},
		{
			"id":          "post-hiring",
			"status":      "published",
			"title":       "Hiring Temporary Staff at Short Notice",
			"slug":        "hiring-temporary-staff",
			"excerpt":     "What employers need to know about temporary cover.",
			"content":     "Temporary staff can keep your business running during busy seasons.",
			"categories":  []string{"Employers"},
			"tags":        []string{"temporary", "hiring"},
			"createdBy":   "Client Services",
			"createdAt":   now.Add(-7 * day).Format(time.RFC3339),
			"publishedAt": now.Add(-6 * day).Format(time.RFC3339),
		},
		{
			"id":         "post-draft",
			"status":     "draft",
			"title":      "Salary Guide (Draft)",
			"slug":       "salary-guide",
			"excerpt":    "Coming soon.",
			"content":    "Work in progress.",
			"categories": []string{"Career Advice"},
			"tags":       []string{"salary"},
			"createdBy":  "Recruitment Team",
			"createdAt":  now.Add(-1 * day).Format(time.RFC3339),
		},
	}
}

func demoJobs(now time.Time) []seedDoc {
	day := 24 * time.Hour
	return []seedDoc{
		{
			"status":         "published",
			"title":          "Warehouse Operative",
			"location":       "Manchester",
			"employmentType": string(model.EmploymentTemporary),
			"salaryRange":    "£11.50 - £12.50 per hour",
			"description":    "Picking and packing in a busy distribution centre.",
			"requirements":   []string{"Able to lift up to 20kg", "Flexible shifts"},
			"benefits":       []string{"Weekly pay"},
			"createdAt":      now.Add(-3 * day).Format(time.RFC3339),
		},
		{
			"status":         "published",
			"title":          "Office Administrator",
			"location":       "Greater Manchester",
			"employmentType": string(model.EmploymentPermanent),
			"salaryRange":    "£24,000 - £27,000",
			"description":    "Supporting a small team with scheduling and records.",
			"requirements":   []string{"Microsoft Office", "Excellent communication"},
			"benefits":       []string{"25 days holiday", "Pension"},
			"createdAt":      now.Add(-5 * day).Format(time.RFC3339),
		},
		{
			"status":         "published",
			"title":          "Project Accountant",
			"location":       "Leeds",
			"employmentType": string(model.EmploymentContract),
			"description":    "Six month contract supporting a finance transformation.",
			"requirements":   []string{"Part qualified ACCA or CIMA"},
			"benefits":       []string{"Hybrid working"},
			"createdAt":      now.Add(-10 * day).Format(time.RFC3339),
		},
		{
			"status":         "draft",
			"title":          "Forklift Driver",
			"location":       "Leeds",
			"employmentType": string(model.EmploymentTemporary),
			"description":    "Draft listing awaiting client approval.",
			"createdAt":      now.Add(-1 * day).Format(time.RFC3339),
		},
	}
}

// SeedDemo fills empty collections with a small recruitment sample.
// Collections that already hold documents are left untouched.
func SeedDemo(ctx context.Context, docs *Documents, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now().UTC().Truncate(time.Second)

	seeds := map[string][]seedDoc{
		model.CollectionBlog: demoBlog(now),
		model.CollectionJobs: demoJobs(now),
	}

	for _, collection := range model.Collections {
		n, err := docs.Count(ctx, collection)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("collection not empty, skipping seed", "collection", collection, "count", n)
			continue
		}

		for _, doc := range seeds[collection] {
			id, _ := doc["id"].(string)
			if id == "" {
				id = uuid.NewString()
				doc["id"] = id
			}
			body, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("encoding seed %s/%s: %w", collection, id, err)
			}
			if _, err := docs.Put(ctx, collection, id, body); err != nil {
				return err
			}
		}
		logger.Info("seeded collection", "collection", collection, "count", len(seeds[collection]))
	}
	return nil
}
