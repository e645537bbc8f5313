// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxSourceURLLength is the maximum allowed length for a remote source URL.
const MaxSourceURLLength = 2048

// ValidateSourceURL checks that a remote content source URL is an absolute
// http or https URL with a hostname and no embedded credentials, query or
// fragment. Collection names are appended to it as path segments.
func ValidateSourceURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL is required")
	}
	if len(rawURL) > MaxSourceURLLength {
		return fmt.Errorf("URL exceeds maximum length of %d characters", MaxSourceURLLength)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme")
	}

	if parsedURL.Hostname() == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	if parsedURL.User != nil {
		return fmt.Errorf("URL must not contain credentials")
	}

	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return fmt.Errorf("URL must not contain a query or fragment")
	}

	return nil
}

// TrimBaseURL removes trailing slashes so paths can be joined with "/".
func TrimBaseURL(rawURL string) string {
	return strings.TrimRight(rawURL, "/")
}
