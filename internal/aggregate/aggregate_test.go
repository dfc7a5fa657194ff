// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-writer/internal/scrape"
	"github.com/pdiddy/paper-writer/internal/websearch"
	"github.com/pdiddy/paper-writer/pkg/types"
)

// fakeSearch is a canned search backend.
type fakeSearch struct {
	results []websearch.Result
	err     error
}

func (f *fakeSearch) Name() string { return "fake" }

func (f *fakeSearch) Search(_ context.Context, _ string, _ types.SearchConfig) ([]websearch.Result, error) {
	return f.results, f.err
}

// pageServer serves a paragraph of n repetitions per path.
func pageServer(pages map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, "<html><body><p>"+body+"</p></body></html>")
	}))
}

func newAggregator(ts *httptest.Server, results []websearch.Result) *Aggregator {
	return &Aggregator{
		Search: &fakeSearch{results: results},
		Fetcher: &scrape.Fetcher{
			Config: types.ScrapeConfig{
				HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
			},
			Client: ts.Client(),
		},
		SearchCfg: types.SearchConfig{NumURLs: 3},
		MinLength: 100,
	}
}

func TestAggregateBuildsAttributedBlocks(t *testing.T) {
	long := strings.Repeat("Renewable generation keeps growing. ", 10)
	ts := pageServer(map[string]string{
		"/one": long,
		"/two": long,
	})
	defer ts.Close()

	results := []websearch.Result{
		{URL: ts.URL + "/one"},
		{URL: ts.URL + "/two"},
	}

	var log bytes.Buffer
	got := newAggregator(ts, results).Aggregate(context.Background(), "solar", &log)

	assert.Contains(t, got, fmt.Sprintf("--- Content from %s/one ---\n", ts.URL))
	assert.Contains(t, got, fmt.Sprintf("--- Content from %s/two ---\n", ts.URL))
	// Blocks appear in provider order.
	assert.Less(t, strings.Index(got, "/one"), strings.Index(got, "/two"))
	assert.True(t, strings.HasSuffix(got, "\n\n"))
}

func TestAggregateFiltersShortContent(t *testing.T) {
	long := strings.Repeat("Plenty of usable page text here. ", 10)
	ts := pageServer(map[string]string{
		"/long":  long,
		"/short": "too short",
	})
	defer ts.Close()

	results := []websearch.Result{
		{URL: ts.URL + "/short"},
		{URL: ts.URL + "/long"},
	}

	var log bytes.Buffer
	got := newAggregator(ts, results).Aggregate(context.Background(), "wind", &log)

	assert.NotContains(t, got, "/short ---")
	assert.Contains(t, got, "/long ---")
	assert.Contains(t, log.String(), "not enough content")
}

func TestAggregateSentinelWhenNothingQualifies(t *testing.T) {
	ts := pageServer(map[string]string{"/only": "tiny"})
	defer ts.Close()

	results := []websearch.Result{{URL: ts.URL + "/only"}}

	var log bytes.Buffer
	got := newAggregator(ts, results).Aggregate(context.Background(), "hydro", &log)
	assert.Equal(t, Sentinel, got)
}

func TestAggregateSentinelOnZeroURLs(t *testing.T) {
	ts := pageServer(nil)
	defer ts.Close()

	var log bytes.Buffer
	got := newAggregator(ts, nil).Aggregate(context.Background(), "geothermal", &log)
	assert.Equal(t, Sentinel, got)
}

func TestAggregateSentinelOnSearchError(t *testing.T) {
	ts := pageServer(nil)
	defer ts.Close()

	agg := newAggregator(ts, nil)
	agg.Search = &fakeSearch{err: fmt.Errorf("provider down")}

	var log bytes.Buffer
	got := agg.Aggregate(context.Background(), "tidal", &log)
	assert.Equal(t, Sentinel, got)
	assert.Contains(t, log.String(), "provider down")
}

func TestAggregateFailedFetchSkipped(t *testing.T) {
	long := strings.Repeat("Content that easily clears the length bar. ", 10)
	ts := pageServer(map[string]string{"/good": long})
	defer ts.Close()

	results := []websearch.Result{
		{URL: ts.URL + "/missing"},
		{URL: ts.URL + "/good"},
	}

	var log bytes.Buffer
	got := newAggregator(ts, results).Aggregate(context.Background(), "biomass", &log)

	require.Contains(t, got, "/good ---")
	assert.NotContains(t, got, "/missing ---")
}
