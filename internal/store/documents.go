// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/staffsite/internal/model"
)

// Documents is the SQLite-backed Source. Each record is stored as a JSON
// document keyed by (collection, id); position keeps insertion order.
//
// The write methods exist for seeding and imports. The query engine only
// ever calls List.
type Documents struct {
	db *sql.DB
}

// NewDocuments creates a document store over an open, migrated database.
func NewDocuments(db *sql.DB) *Documents {
	return &Documents{db: db}
}

// List returns every document of collection in storage order.
func (d *Documents) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if !model.KnownCollection(collection) {
		return emptyDocuments(), nil
	}

	rows, err := d.db.QueryContext(ctx,
		`SELECT body FROM documents WHERE collection = ? ORDER BY position, rowid`, collection)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	docs := emptyDocuments()
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning %s document: %w", collection, err)
		}
		docs = append(docs, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}

	return docs, nil
}

// Get returns a single document. It returns sql.ErrNoRows when absent.
func (d *Documents) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var body string
	err := d.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// Exists reports whether a document is stored under (collection, id).
func (d *Documents) Exists(ctx context.Context, collection, id string) (bool, error) {
	_, err := d.Get(ctx, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Put stores body under (collection, id), replacing any existing document
// while keeping its position. New documents are appended to the collection.
// It reports whether a new document was created.
func (d *Documents) Put(ctx context.Context, collection, id string, body json.RawMessage) (bool, error) {
	if !model.KnownCollection(collection) {
		return false, fmt.Errorf("storing into %q: unknown collection", collection)
	}
	if id == "" {
		return false, fmt.Errorf("storing into %s: document id is required", collection)
	}
	if !json.Valid(body) {
		return false, fmt.Errorf("storing %s/%s: body is not valid JSON", collection, id)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)

	res, err := tx.ExecContext(ctx,
		`UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(body), now, collection, id)
	if err != nil {
		return false, fmt.Errorf("updating %s/%s: %w", collection, id, err)
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating %s/%s: %w", collection, id, err)
	}

	if updated == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (collection, id, position, body, created_at, updated_at)
			VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM documents WHERE collection = ?), ?, ?, ?)`,
			collection, id, collection, string(body), now, now)
		if err != nil {
			return false, fmt.Errorf("inserting %s/%s: %w", collection, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing %s/%s: %w", collection, id, err)
	}
	return updated == 0, nil
}

// Count returns the number of documents in collection.
func (d *Documents) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = ?`, collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", collection, err)
	}
	return n, nil
}

// Truncate removes every document of collection.
func (d *Documents) Truncate(ctx context.Context, collection string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ?`, collection); err != nil {
		return fmt.Errorf("truncating %s: %w", collection, err)
	}
	return nil
}

// Ping checks the database connection.
func (d *Documents) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

var (
	_ Source = (*Documents)(nil)
	_ Pinger = (*Documents)(nil)
)
