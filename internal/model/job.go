// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// EmploymentType is the contract kind of a job posting.
type EmploymentType string

// Employment types
const (
	EmploymentPermanent EmploymentType = "permanent"
	EmploymentTemporary EmploymentType = "temporary"
	EmploymentContract  EmploymentType = "contract"
)

// EmploymentTypes lists the valid employment types.
var EmploymentTypes = []EmploymentType{EmploymentPermanent, EmploymentTemporary, EmploymentContract}

// ParseEmploymentType normalises a stored employment type.
// Unknown values return the empty EmploymentType.
func ParseEmploymentType(s string) EmploymentType {
	t := EmploymentType(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range EmploymentTypes {
		if t == valid {
			return t
		}
	}
	return ""
}

// Label returns a human-readable form of the employment type.
func (t EmploymentType) Label() string {
	switch t {
	case EmploymentPermanent:
		return "Permanent"
	case EmploymentTemporary:
		return "Temporary"
	case EmploymentContract:
		return "Contract"
	}
	return ""
}

// Job is a single posting in the "jobs" collection.
// Public lookups address jobs by ID.
type Job struct {
	ID             string         `json:"id"`
	Status         Status         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	PublishedAt    time.Time      `json:"published_at"`
	Title          string         `json:"title"`
	Location       string         `json:"location"`
	EmploymentType EmploymentType `json:"employment_type"`
	SalaryRange    string         `json:"salary_range"`
	Description    string         `json:"description"`
	Requirements   []string       `json:"requirements"`
	Benefits       []string       `json:"benefits"`
}

// RecordID returns the job's unique identifier.
func (j Job) RecordID() string { return j.ID }

// IsPublished returns true if the job is published.
func (j Job) IsPublished() bool {
	return j.Status == StatusPublished
}

// Date returns the requested timestamp, or the zero time when absent.
func (j Job) Date(field DateField) time.Time {
	switch field {
	case FieldCreatedAt:
		return j.CreatedAt
	case FieldPublishedAt:
		return j.PublishedAt
	}
	return time.Time{}
}

// SearchFields returns the text a search term is matched against:
// title, description, location, every requirement and every benefit.
func (j Job) SearchFields() []string {
	fields := make([]string, 0, 3+len(j.Requirements)+len(j.Benefits))
	fields = append(fields, j.Title, j.Description, j.Location)
	fields = append(fields, j.Requirements...)
	fields = append(fields, j.Benefits...)
	return fields
}

// FacetValues returns the job's values for facet.
func (j Job) FacetValues(facet Facet) ([]string, bool) {
	switch facet {
	case FacetLocation:
		return []string{j.Location}, true
	case FacetEmploymentType:
		return []string{string(j.EmploymentType)}, true
	}
	return nil, false
}

// MatchFacet reports whether the job matches value for facet.
// Location is a case-insensitive substring match; employment type is exact.
func (j Job) MatchFacet(facet Facet, value string) bool {
	switch facet {
	case FacetLocation:
		return containsFold(j.Location, value)
	case FacetEmploymentType:
		return string(j.EmploymentType) == value
	}
	return false
}

// RelatedTo reports whether the job shares an employment type or a location with other.
func (j Job) RelatedTo(other Job) bool {
	if j.EmploymentType != "" && j.EmploymentType == other.EmploymentType {
		return true
	}
	loc := strings.TrimSpace(j.Location)
	return loc != "" && strings.EqualFold(loc, strings.TrimSpace(other.Location))
}
