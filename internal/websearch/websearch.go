// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch discovers candidate URLs for a text query through a
// web search API. Each provider (Brave, Serper) implements the Backend
// interface per the Strategy pattern; the pipeline only needs "N ranked
// result URLs for a text query".
package websearch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/paper-writer/pkg/types"
)

// Result is a single ranked search hit.
type Result struct {
	// Title is the result's page title.
	Title string `json:"title" yaml:"title"`

	// URL is the result's location.
	URL string `json:"url" yaml:"url"`

	// Snippet is the provider's short description of the page.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// Backend searches a single web search API.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]Result, error)
}

// Provider names accepted in configuration.
const (
	ProviderBrave  = "brave"
	ProviderSerper = "serper"
)

// New returns the Backend for the configured provider name. Both
// providers authenticate every request, so an empty key is an error
// here rather than a 401 on every search.
func New(provider, apiKey string, client *http.Client) (Backend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s search requires an API key", provider)
	}
	switch provider {
	case ProviderBrave:
		return &BraveBackend{APIKey: apiKey, Client: client}, nil
	case ProviderSerper:
		return &SerperBackend{APIKey: apiKey, Client: client}, nil
	default:
		return nil, fmt.Errorf("unsupported search provider %q (want %q or %q)", provider, ProviderBrave, ProviderSerper)
	}
}

// URLs runs the query and returns just the result URLs, in provider
// ranking order, bounded by cfg.NumURLs. Empty queries are an error;
// zero results are not.
func URLs(ctx context.Context, b Backend, query string, cfg types.SearchConfig) ([]string, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	results, err := b.Search(ctx, query, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", b.Name(), err)
	}

	urls := make([]string, 0, len(results))
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		urls = append(urls, r.URL)
	}
	return urls, nil
}
