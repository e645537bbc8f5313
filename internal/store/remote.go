// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/olegiv/staffsite/internal/model"
	"github.com/olegiv/staffsite/internal/util"
)

// envelopePaths are tried, in order, when a response body is not a bare
// JSON array.
var envelopePaths = []string{"data", "items", "records"}

// RemoteOptions configures a RemoteSource.
type RemoteOptions struct {
	// BaseURL is the collection endpoint root; collections are fetched
	// from BaseURL + "/" + collection.
	BaseURL string

	// Token is sent as a bearer token when set.
	Token string

	// Timeout bounds each request (0 = rely on the caller's context only).
	Timeout time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// RemoteSource reads collections from a JSON HTTP API.
type RemoteSource struct {
	client *resty.Client
}

// NewRemoteSource creates a remote source after validating its base URL.
func NewRemoteSource(opts RemoteOptions) (*RemoteSource, error) {
	if err := util.ValidateSourceURL(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("remote source: %w", err)
	}

	client := resty.New().
		SetBaseURL(util.TrimBaseURL(opts.BaseURL)).
		SetHeader("Accept", "application/json")

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.Token != "" {
		client.SetAuthToken(opts.Token)
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &RemoteSource{client: client}, nil
}

// List fetches collection and returns its records in response order.
// The body may be a JSON array or an object holding the array under
// "data", "items", "records" or the collection name.
func (s *RemoteSource) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if !model.KnownCollection(collection) {
		return emptyDocuments(), nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		Get("/{collection}")
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", collection, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", collection, resp.StatusCode())
	}

	return parseRemoteBody(resp.Body(), collection)
}

// Ping requests the base URL and treats any non-5xx answer as healthy.
func (s *RemoteSource) Ping(ctx context.Context) error {
	resp, err := s.client.R().SetContext(ctx).Head("/")
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 500 {
		return fmt.Errorf("remote source returned status %d", resp.StatusCode())
	}
	return nil
}

// parseRemoteBody extracts the record array from a response body.
func parseRemoteBody(body []byte, collection string) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("fetching %s: response is not valid JSON", collection)
	}

	list := gjson.ParseBytes(body)
	if !list.IsArray() {
		paths := make([]string, 0, len(envelopePaths)+1)
		paths = append(paths, envelopePaths...)
		paths = append(paths, collection)

		found := false
		for _, path := range paths {
			if r := list.Get(path); r.IsArray() {
				list = r
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("fetching %s: no record list in response", collection)
		}
	}

	docs := emptyDocuments()
	for _, item := range list.Array() {
		docs = append(docs, json.RawMessage(item.Raw))
	}
	return docs, nil
}

var (
	_ Source = (*RemoteSource)(nil)
	_ Pinger = (*RemoteSource)(nil)
)
