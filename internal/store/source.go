// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the storage collaborators behind the content
// query engine: a SQLite document store, a file-backed store, a remote
// HTTP store and an optional caching decorator.
package store

import (
	"context"
	"encoding/json"
)

// Source reads whole collections.
//
// List returns every record of collection (drafts included) as raw JSON
// documents in storage order. An unknown collection yields an empty
// slice and a nil error; only a failed read returns an error.
type Source interface {
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
}

// Pinger is implemented by sources that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// emptyDocuments returns a non-nil empty result.
func emptyDocuments() []json.RawMessage {
	return make([]json.RawMessage, 0)
}
