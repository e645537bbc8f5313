// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

// Error represents an error returned by the query engine.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound means a slug or id lookup matched no published record,
	// or matched more than one. It is an expected outcome, not a failure.
	ErrNotFound Error = "record not found"

	// ErrCollectionUnavailable means the underlying storage read failed.
	ErrCollectionUnavailable Error = "collection unavailable"

	// ErrUnknownCollection means the collection name is not one the site serves.
	ErrUnknownCollection Error = "unknown collection"
)
