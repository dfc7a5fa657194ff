// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-writer/pkg/types"
)

const samplePage = `<html><head><title>Sample</title></head><body>
<h1>Renewable Energy</h1>
<nav><a href="/">home</a></nav>
<p>Solar capacity doubled over the decade.</p>
<div class="content"><p>Wind power is the largest source in several markets.</p></div>
<p>   </p>
<h2>Outlook</h2>
</body></html>`

func testFetcher(client *http.Client) *Fetcher {
	return &Fetcher{
		Config: types.ScrapeConfig{
			HTTPConfig: types.HTTPConfig{Timeout: 10 * time.Second},
			MinLength:  100,
		},
		Client: client,
	}
}

func TestFetchExtractsHeadingsAndParagraphs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, samplePage)
	}))
	defer ts.Close()

	f := testFetcher(ts.Client())
	text, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	want := "Renewable Energy\n" +
		"Solar capacity doubled over the decade.\n" +
		"Wind power is the largest source in several markets.\n" +
		"Outlook"
	assert.Equal(t, want, text)
}

func TestFetchWithSelector(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, samplePage)
	}))
	defer ts.Close()

	f := testFetcher(ts.Client())
	f.Config.Selector = "div.content p"
	text, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "Wind power is the largest source in several markets.", text)
}

func TestFetchSendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, samplePage)
	}))
	defer ts.Close()

	f := testFetcher(ts.Client())
	_, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetchNonOKStatusIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f := testFetcher(ts.Client())
	_, err := f.Fetch(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestTextSwallowsErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	ts.Close() // closed server: connection refused

	f := testFetcher(nil)
	var log bytes.Buffer
	text := f.Text(context.Background(), ts.URL, &log)
	assert.Equal(t, "", text)
	assert.Contains(t, log.String(), "error scraping")
}

func TestFetchReadabilityMode(t *testing.T) {
	page := `<html><head><title>Article</title></head><body>
<article><h1>Grid Storage</h1>
<p>` + strings.Repeat("Battery storage smooths intermittent generation. ", 10) + `</p>
<p>` + strings.Repeat("Costs fell sharply across a decade of deployment. ", 10) + `</p>
</article></body></html>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, page)
	}))
	defer ts.Close()

	f := testFetcher(ts.Client())
	f.Config.Mode = ModeReadability
	text, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Battery storage smooths intermittent generation.")
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b c", normalizeText("  a \t b   c  "))
	assert.Equal(t, "", normalizeText(" \t "))
}
