// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/paper-writer/pkg/types"
)

// serperAPIBase is the Serper search endpoint. Declared as a var so
// tests can substitute an httptest server.
var serperAPIBase = "https://google.serper.dev/search"

// SerperBackend queries the Serper API (Google results).
type SerperBackend struct {
	APIKey string
	Client *http.Client
}

// Name returns the backend identifier.
func (s *SerperBackend) Name() string { return ProviderSerper }

// serperResponse mirrors the subset of the Serper reply the pipeline uses.
type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search queries Serper and returns up to cfg.NumURLs ranked results.
func (s *SerperBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]Result, error) {
	count := cfg.NumURLs
	if count <= 0 {
		count = 3
	}

	body, err := json.Marshal(map[string]any{"q": query, "num": count})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperAPIBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.APIKey)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Serper API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Serper API returned HTTP %d", resp.StatusCode)
	}

	var raw serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing Serper response: %w", err)
	}

	var results []Result
	for i, r := range raw.Organic {
		if i >= count {
			break
		}
		results = append(results, Result{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
	}
	return results, nil
}
