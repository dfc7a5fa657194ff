// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape fetches web pages and extracts their visible text.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/pdiddy/paper-writer/pkg/types"
)

// DefaultUserAgent is the browser-like identification header sent with
// page fetches. Many sites serve reduced or no content to obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.93 Safari/537.36"

// elementSelector matches headings and paragraphs, the default
// extraction targets when no CSS selector is configured.
const elementSelector = "p, h1, h2, h3, h4, h5, h6"

// Extraction modes.
const (
	ModeElements    = "elements"
	ModeReadability = "readability"
)

var reWhitespace = regexp.MustCompile(`[ \t]+`)

// Fetcher retrieves pages and extracts text per its configuration.
type Fetcher struct {
	Config types.ScrapeConfig
	Client *http.Client
}

// Text fetches url and returns its extracted text. Any network, status,
// or parse error is written to w and swallowed: the return value is ""
// and the caller moves on to the next URL. A single failure is terminal
// for that URL; there is no retry.
func (f *Fetcher) Text(ctx context.Context, pageURL string, w io.Writer) string {
	text, err := f.Fetch(ctx, pageURL)
	if err != nil {
		fmt.Fprintf(w, "error scraping %s: %v\n", pageURL, err)
		return ""
	}
	return text
}

// Fetch retrieves url and extracts text, returning any error to the
// caller. Most call sites want Text, which degrades to "".
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if f.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	ua := f.Config.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("page returned HTTP %d", resp.StatusCode)
	}

	if f.Config.Mode == ModeReadability {
		return extractReadability(resp.Body, pageURL)
	}
	return extractElements(resp.Body, f.Config.Selector)
}

// extractElements parses HTML and joins the trimmed text of matched
// elements with newlines. With no selector it takes headings and
// paragraphs; elements whose trimmed text is empty are dropped.
func extractElements(r io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	if selector == "" {
		selector = elementSelector
	}

	var texts []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if t := normalizeText(sel.Text()); t != "" {
			texts = append(texts, t)
		}
	})
	return strings.Join(texts, "\n"), nil
}

// extractReadability extracts main-article text, dropping navigation
// and boilerplate.
func extractReadability(r io.Reader, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	article, err := readability.FromReader(r, parsed)
	if err != nil {
		return "", fmt.Errorf("readability extraction: %w", err)
	}
	return normalizeText(article.TextContent), nil
}

// normalizeText collapses runs of spaces and tabs and trims the result.
func normalizeText(text string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}
