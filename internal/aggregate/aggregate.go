// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate combines scraped page content for a search query.
package aggregate

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-writer/internal/httputil"
	"github.com/pdiddy/paper-writer/internal/scrape"
	"github.com/pdiddy/paper-writer/internal/websearch"
	"github.com/pdiddy/paper-writer/pkg/types"
)

// Sentinel is returned when no URL yielded sufficient content. It flows
// through the rest of the pipeline like ordinary text so a dry query
// never aborts a run.
const Sentinel = "No content found."

// Aggregator wires the search backend and page fetcher for one run.
// Fetches through the same Aggregator are paced by a shared gate.
type Aggregator struct {
	Search  websearch.Backend
	Fetcher *scrape.Fetcher

	SearchCfg types.SearchConfig
	MinLength int

	// FetchGate paces consecutive page fetches. Nil disables pacing.
	FetchGate *httputil.Gate
}

// Aggregate obtains candidate URLs for query, scrapes each in provider
// order, and concatenates the texts that meet the minimum length as
// attributed blocks. URLs that fail to fetch or come back too short are
// reported on w and skipped; no substitute URL is fetched. Returns
// Sentinel when nothing qualified.
func (a *Aggregator) Aggregate(ctx context.Context, query string, w io.Writer) string {
	urls, err := websearch.URLs(ctx, a.Search, query, a.SearchCfg)
	if err != nil {
		fmt.Fprintf(w, "error searching for %q: %v\n", query, err)
		return Sentinel
	}
	fmt.Fprintf(w, "URLs found for query %q: %v\n", query, urls)

	minLength := a.MinLength
	if minLength <= 0 {
		minLength = 100
	}

	var b strings.Builder
	for _, u := range urls {
		if err := a.FetchGate.Wait(ctx); err != nil {
			fmt.Fprintf(w, "aggregation interrupted: %v\n", err)
			break
		}

		text := a.Fetcher.Text(ctx, u, w)
		if len(text) < minLength {
			fmt.Fprintf(w, "not enough content from %s (length=%d)\n", u, len(text))
			continue
		}
		fmt.Fprintf(&b, "--- Content from %s ---\n%s\n\n", u, text)
	}

	if b.Len() == 0 {
		return Sentinel
	}
	return b.String()
}
