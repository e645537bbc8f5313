// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package present holds the display helpers used when records are rendered:
// dates, excerpts, reading time, salary text and record body HTML.
// None of them fail or panic on empty input.
package present

import (
	"bytes"
	"html"
	"strings"
	"time"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultDateLayout renders dates as "2 January 2006".
const DefaultDateLayout = "2 January 2006"

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

// CompetitiveSalary is shown for jobs without a salary range.
const CompetitiveSalary = "Competitive"

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)

	// Record bodies are authored content, but they still pass through the
	// same sanitiser as any other user-generated HTML.
	ugcPolicy   = bluemonday.UGCPolicy()
	stripPolicy = bluemonday.StrictPolicy()
)

// FormatDate formats t with layout, or DefaultDateLayout when layout is
// empty. The zero time formats as "".
func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// Truncate shortens s to at most max runes, appending "…" when it cuts.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := strings.TrimRightFunc(string(runes[:max]), unicode.IsSpace)
	return cut + "…"
}

// ReadingTime estimates minutes to read content. Non-empty text takes at
// least one minute; empty text takes zero.
func ReadingTime(content string) int {
	words := len(strings.Fields(StripHTML(content)))
	if words == 0 {
		return 0
	}
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return max(minutes, 1)
}

// SalaryDisplay returns the salary range, or CompetitiveSalary when none is set.
func SalaryDisplay(salaryRange string) string {
	if s := strings.TrimSpace(salaryRange); s != "" {
		return s
	}
	return CompetitiveSalary
}

// RenderContent converts a record body to sanitised HTML. Line breaks in
// the source are kept as <br>.
func RenderContent(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		// Fall back to escaped text rather than dropping the body.
		return "<p>" + strings.ReplaceAll(html.EscapeString(content), "\n", "<br>") + "</p>"
	}
	return ugcPolicy.Sanitize(buf.String())
}

// StripHTML removes all markup and collapses whitespace.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt returns the explicit excerpt when set, otherwise a truncated
// plain-text version of content.
func Excerpt(excerpt, content string, max int) string {
	if e := strings.TrimSpace(excerpt); e != "" {
		return e
	}
	return Truncate(StripHTML(RenderContent(content)), max)
}
