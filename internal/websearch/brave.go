// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/paper-writer/pkg/types"
)

// braveAPIBase is the Brave web search endpoint. Declared as a var so
// tests can substitute an httptest server.
var braveAPIBase = "https://api.search.brave.com/res/v1/web/search"

// BraveBackend queries the Brave Search API.
type BraveBackend struct {
	APIKey string
	Client *http.Client
}

// Name returns the backend identifier.
func (b *BraveBackend) Name() string { return ProviderBrave }

// braveResponse mirrors the subset of the Brave reply the pipeline uses.
type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search queries Brave and returns up to cfg.NumURLs ranked results.
func (b *BraveBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]Result, error) {
	count := cfg.NumURLs
	if count <= 0 {
		count = 3
	}

	endpoint := fmt.Sprintf("%s?q=%s&count=%d", braveAPIBase, url.QueryEscape(query), count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.APIKey)
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Brave API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Brave API returned HTTP %d", resp.StatusCode)
	}

	var raw braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing Brave response: %w", err)
	}

	var results []Result
	for i, r := range raw.Web.Results {
		if i >= count {
			break
		}
		results = append(results, Result{Title: r.Title, URL: r.URL, Snippet: r.Description})
	}
	return results, nil
}
