// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides slug generation and validation, and validation of
// remote content source URLs.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength is the longest slug Slugify produces and IsValidSlug accepts.
const MaxSlugLength = 120

var (
	// separators become a single hyphen
	separators = regexp.MustCompile(`[^a-z0-9]+`)

	// apostrophes are dropped so "don't" becomes "dont", not "don-t"
	apostrophes = strings.NewReplacer("'", "", "’", "", "`", "")

	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify converts a blog post title to a URL-friendly slug: accents are
// removed, other scripts transliterated, "&" spelled out and every run of
// other characters collapsed into one hyphen. Long titles are cut at a
// word boundary so the result never exceeds MaxSlugLength.
func Slugify(title string) string {
	s, _, _ := transform.String(stripMarks, title)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = apostrophes.Replace(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = separators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > MaxSlugLength {
		s = s[:MaxSlugLength]
		if i := strings.LastIndexByte(s, '-'); i > 0 {
			s = s[:i]
		}
		s = strings.Trim(s, "-")
	}
	return s
}

// IsValidSlug reports whether s has the shape Slugify produces: lowercase
// ASCII letters and digits in hyphen-separated words.
func IsValidSlug(s string) bool {
	if s == "" || len(s) > MaxSlugLength {
		return false
	}
	if s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
