// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-writer/pkg/types"
)

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		NumURLs: 3,
	}
}

func TestNew(t *testing.T) {
	b, err := New(ProviderBrave, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, "brave", b.Name())

	s, err := New(ProviderSerper, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, "serper", s.Name())

	_, err = New("duckduckgo", "key", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported search provider")
}

func TestNewRejectsEmptyAPIKey(t *testing.T) {
	for _, provider := range []string{ProviderBrave, ProviderSerper} {
		_, err := New(provider, "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires an API key")
	}
}

func TestBraveSearch(t *testing.T) {
	var gotToken, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Subscription-Token")
		gotQuery = r.URL.Query().Get("q")
		io.WriteString(w, `{"web": {"results": [
			{"title": "First", "url": "https://a.example/one", "description": "d1"},
			{"title": "Second", "url": "https://b.example/two", "description": "d2"},
			{"title": "Third", "url": "https://c.example/three", "description": "d3"},
			{"title": "Fourth", "url": "https://d.example/four", "description": "d4"}
		]}}`)
	}))
	defer ts.Close()

	orig := braveAPIBase
	braveAPIBase = ts.URL
	defer func() { braveAPIBase = orig }()

	b := &BraveBackend{APIKey: "brave-key", Client: ts.Client()}
	results, err := b.Search(context.Background(), "solar panels", testCfg())
	require.NoError(t, err)

	assert.Equal(t, "brave-key", gotToken)
	assert.Equal(t, "solar panels", gotQuery)
	// Bounded by NumURLs, in ranking order.
	require.Len(t, results, 3)
	assert.Equal(t, "https://a.example/one", results[0].URL)
	assert.Equal(t, "https://c.example/three", results[2].URL)
}

func TestSerperSearch(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"organic": [
			{"title": "First", "link": "https://a.example/one", "snippet": "s1"},
			{"title": "Second", "link": "https://b.example/two", "snippet": "s2"}
		]}`)
	}))
	defer ts.Close()

	orig := serperAPIBase
	serperAPIBase = ts.URL
	defer func() { serperAPIBase = orig }()

	s := &SerperBackend{APIKey: "serper-key", Client: ts.Client()}
	results, err := s.Search(context.Background(), "wind turbines", testCfg())
	require.NoError(t, err)

	assert.Equal(t, "serper-key", gotKey)
	assert.Equal(t, "wind turbines", gotBody["q"])
	require.Len(t, results, 2)
	assert.Equal(t, "https://b.example/two", results[1].URL)
}

func TestSearchHTTPErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	orig := braveAPIBase
	braveAPIBase = ts.URL
	defer func() { braveAPIBase = orig }()

	b := &BraveBackend{APIKey: "k", Client: ts.Client()}
	_, err := b.Search(context.Background(), "q", testCfg())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestURLs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"web": {"results": [
			{"title": "A", "url": "https://a.example"},
			{"title": "No URL", "url": ""},
			{"title": "B", "url": "https://b.example"}
		]}}`)
	}))
	defer ts.Close()

	orig := braveAPIBase
	braveAPIBase = ts.URL
	defer func() { braveAPIBase = orig }()

	b := &BraveBackend{APIKey: "k", Client: ts.Client()}
	urls, err := URLs(context.Background(), b, "query", testCfg())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, urls)
}

func TestURLsEmptyQuery(t *testing.T) {
	b := &BraveBackend{APIKey: "k"}
	_, err := URLs(context.Background(), b, "", testCfg())
	require.Error(t, err)
}
