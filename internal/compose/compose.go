// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose turns aggregated page content into section prose via
// the generative API: query generation, narrative formatting, and
// length enforcement. Every operation is best-effort; failures degrade
// to the defaults declared in fallback.go and never block the pipeline.
package compose

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/paper-writer/internal/ai"
	"github.com/pdiddy/paper-writer/pkg/types"
)

// Token budgets per operation. Formatting and summarization produce
// full section prose and get the larger budget.
const (
	queryMaxTokens = 300
	proseMaxTokens = 1500
	queriesWanted  = 3
)

// Default call timeouts, used when the config leaves them zero.
const (
	defaultQueryTimeout  = 15 * time.Second
	defaultFormatTimeout = 20 * time.Second
	defaultLimitTimeout  = 25 * time.Second
)

// Composer holds the generative client and stage configuration.
type Composer struct {
	Client *ai.Client
	Config types.AIConfig
}

// GenerateQueries asks the model for a small set of angle-diverse search
// queries for the section. The reply is split on line breaks, trimmed,
// and blank lines dropped. Any request or parse failure, or an empty
// parse, yields the single fallback query instead; the returned list is
// never empty.
func (c *Composer) GenerateQueries(ctx context.Context, section, topic string, w io.Writer) []string {
	prompt := fmt.Sprintf(
		"Generate %d unique and distinct search queries to gather diverse and detailed information on %s "+
			"for the research paper section '%s'. Each query should focus on a different angle or aspect "+
			"that would be useful for a comprehensive research paper. Return each query on a separate line.",
		queriesWanted, topic, section)

	payload, err := c.Client.Complete(ctx, prompt, queryMaxTokens, c.timeout(c.Config.QueryTimeout, defaultQueryTimeout))
	if err != nil {
		fmt.Fprintf(w, "error generating search queries for %s: %v\n", section, err)
		return fallbackQueries(topic, section)
	}

	var queries []string
	for _, line := range strings.Split(payload.JoinLines(), "\n") {
		if q := strings.TrimSpace(line); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		fmt.Fprintf(w, "empty query reply for %s, using fallback\n", section)
		return fallbackQueries(topic, section)
	}

	fmt.Fprintf(w, "generated queries for %q: %v\n", section, queries)
	return queries
}

// FormatNarrative rewrites raw aggregated text as formal academic prose
// covering all information present. On any failure the original text is
// returned unchanged; formatting never blocks the pipeline.
func (c *Composer) FormatNarrative(ctx context.Context, raw string, w io.Writer) string {
	prompt := "Please transform the following text into a detailed, narrative summary in an academic style, " +
		"as if writing a section of a research paper. Do not simply produce bullet points; instead, " +
		"craft full sentences with coherent paragraphs, integrating the information into a descriptive " +
		"and formal narrative. Remove any HTML or formatting tags, and ensure the output is comprehensive.\n\n" +
		raw

	payload, err := c.Client.Complete(ctx, prompt, proseMaxTokens, c.timeout(c.Config.FormatTimeout, defaultFormatTimeout))
	if err != nil {
		fmt.Fprintf(w, "error during narrative formatting: %v\n", err)
		return fallbackNarrative(raw)
	}
	if payload.IsEmpty() {
		return fallbackNarrative(raw)
	}
	return payload.JoinSpaces()
}

// EnforceLimit returns text unchanged when it fits within limit
// characters; it is idempotent for compliant input. Oversized text is
// rewritten by the model as a cohesive summary bounded by limit. The
// model's compliance is never trusted: an oversized rewrite, or a
// failed request, is hard-truncated locally, so the result is at most
// limit plus the truncation marker. The limit counts characters, not
// bytes, so multi-byte text is never cut mid-rune.
func (c *Composer) EnforceLimit(ctx context.Context, text string, limit int, w io.Writer) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	prompt := fmt.Sprintf(
		"Please rewrite and elaborate on the following text into a detailed, narrative summary in academic style "+
			"appropriate for a research paper. Ensure that the final output is no longer than %d characters. "+
			"Do not simply truncate the text; generate a cohesive and descriptive summary that captures the essence "+
			"of the original content in full paragraphs.\n\n%s",
		limit, text)

	payload, err := c.Client.Complete(ctx, prompt, proseMaxTokens, c.timeout(c.Config.LimitTimeout, defaultLimitTimeout))
	if err != nil {
		fmt.Fprintf(w, "error during summarization for length limit: %v\n", err)
		return fallbackTruncate(text, limit)
	}

	summarized := payload.JoinSpaces()
	if utf8.RuneCountInString(summarized) > limit {
		summarized = fallbackTruncate(summarized, limit)
	}
	return summarized
}

func (c *Composer) timeout(configured, fallback time.Duration) time.Duration {
	if configured > 0 {
		return configured
	}
	return fallback
}
