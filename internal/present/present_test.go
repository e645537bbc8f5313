// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package present

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		t      time.Time
		layout string
		want   string
	}{
		{name: "default layout", t: d, want: "1 June 2024"},
		{name: "custom layout", t: d, layout: "2006-01-02", want: "2024-06-01"},
		{name: "zero time", t: time.Time{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.t, tt.layout); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{name: "short", s: "Hello", max: 10, want: "Hello"},
		{name: "exact", s: "Hello", max: 5, want: "Hello"},
		{name: "cut", s: "Hello world", max: 5, want: "Hello…"},
		{name: "trailing space trimmed", s: "Hello world", max: 6, want: "Hello…"},
		{name: "multibyte", s: "Zürich Büro", max: 6, want: "Zürich…"},
		{name: "empty", s: "", max: 5, want: ""},
		{name: "zero max", s: "Hello", max: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
			}
		})
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: 0},
		{name: "blank", content: "  \n ", want: 0},
		{name: "one word", content: "Hello", want: 1},
		{name: "exactly 200", content: strings.Repeat("word ", 200), want: 1},
		{name: "201 words", content: strings.Repeat("word ", 201), want: 2},
		{name: "markup ignored", content: "<p>" + strings.Repeat("word ", 400) + "</p>", want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingTime(tt.content); got != tt.want {
				t.Errorf("ReadingTime() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSalaryDisplay(t *testing.T) {
	if got := SalaryDisplay(" £30,000 "); got != "£30,000" {
		t.Errorf("SalaryDisplay = %q", got)
	}
	if got := SalaryDisplay(""); got != CompetitiveSalary {
		t.Errorf("SalaryDisplay(\"\") = %q, want %q", got, CompetitiveSalary)
	}
}

func TestRenderContent(t *testing.T) {
	got := RenderContent("First line\nSecond line")
	if !strings.Contains(got, "First line<br") {
		t.Errorf("hard wrap not rendered: %q", got)
	}

	got = RenderContent("**Apply** now <script>alert(1)</script>")
	if !strings.Contains(got, "<strong>Apply</strong>") {
		t.Errorf("markdown not rendered: %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("script survived sanitising: %q", got)
	}

	if got := RenderContent(""); got != "" {
		t.Errorf("RenderContent(\"\") = %q", got)
	}
}

func TestStripHTML(t *testing.T) {
	if got := StripHTML("<p>Tea &amp; <b>biscuits</b></p>\n<p>daily</p>"); got != "Tea & biscuits daily" {
		t.Errorf("StripHTML = %q", got)
	}
	if got := StripHTML(""); got != "" {
		t.Errorf("StripHTML(\"\") = %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("Given", "Body", 10); got != "Given" {
		t.Errorf("Excerpt = %q", got)
	}
	if got := Excerpt("", "# Heading\n\nSome body text here", 12); got != "Heading Some…" {
		t.Errorf("Excerpt = %q", got)
	}
}
