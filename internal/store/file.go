// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/olegiv/staffsite/internal/model"
)

// fileExtensions are tried in order when locating a collection file.
var fileExtensions = []string{".json", ".yaml", ".yml"}

// FileSource reads collections from a directory of files named after the
// collection: blog.json, jobs.yaml and so on. Files hold either a list of
// records or a mapping with the list under the collection name, "items"
// or "data". A missing file is an empty collection.
type FileSource struct {
	dir string
}

// NewFileSource creates a file-backed source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// List reads and returns every record of collection in file order.
func (s *FileSource) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if !model.KnownCollection(collection) {
		return emptyDocuments(), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.locate(collection)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return emptyDocuments(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	docs, err := ParseDocuments(data, collection)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return docs, nil
}

// Ping checks that the content directory is readable.
func (s *FileSource) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

// locate returns the first existing file for collection, or "" if none.
func (s *FileSource) locate(collection string) (string, error) {
	for _, ext := range fileExtensions {
		path := filepath.Join(s.dir, collection+ext)
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}

// ParseDocuments decodes a JSON or YAML collection file into raw JSON
// documents. The records may be the top-level list or sit under the
// collection name, "items" or "data".
func ParseDocuments(data []byte, collection string) ([]json.RawMessage, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	items, ok := root.([]any)
	if !ok {
		m, isMap := root.(map[string]any)
		if !isMap {
			if root == nil {
				return emptyDocuments(), nil
			}
			return nil, fmt.Errorf("expected a list of records")
		}
		for _, key := range []string{collection, "items", "data"} {
			if list, found := m[key].([]any); found {
				items = list
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("no record list found under %q, \"items\" or \"data\"", collection)
		}
	}

	docs := make([]json.RawMessage, 0, len(items))
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encoding record %d: %w", i, err)
		}
		docs = append(docs, raw)
	}
	return docs, nil
}

var (
	_ Source = (*FileSource)(nil)
	_ Pinger = (*FileSource)(nil)
)
