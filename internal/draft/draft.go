// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft orchestrates the section pipeline and assembles the
// final document. Each section moves through query generation, content
// aggregation, narrative formatting, and length enforcement in order;
// sections are processed sequentially and the run owns the only
// accumulating state.
package draft

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/paper-writer/internal/aggregate"
	"github.com/pdiddy/paper-writer/internal/compose"
	"github.com/pdiddy/paper-writer/internal/httputil"
	"github.com/pdiddy/paper-writer/pkg/types"
)

// separator divides sections in the assembled document.
var separator = strings.Repeat("=", 80)

// DefaultSectionLimit is the per-section character cap.
const DefaultSectionLimit = 50000

// Pipeline wires the stages for one run.
type Pipeline struct {
	Aggregator *aggregate.Aggregator
	Composer   *compose.Composer
	Config     types.DraftConfig

	// QueryGate paces aggregations for successive queries within a
	// section; SectionGate paces section transitions.
	QueryGate   *httputil.Gate
	SectionGate *httputil.Gate
}

// Run executes the pipeline for every section of the outline and
// returns the assembled document. Individual network and API failures
// degrade per stage and never abort the run; the only mid-run errors
// are context cancellation and, when ContinueOnEmpty is false, a
// section that gathered no usable content.
func (p *Pipeline) Run(ctx context.Context, topic string, outline types.Outline, w io.Writer) (*types.Document, error) {
	doc := &types.Document{Topic: topic}

	for _, section := range outline.Sections {
		if err := p.SectionGate.Wait(ctx); err != nil {
			return nil, err
		}

		fmt.Fprintf(w, "\n--- Processing section: %s ---\n", section.Name)

		text, err := p.buildSection(ctx, topic, section, w)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", section.Name, err)
		}

		doc.Sections = append(doc.Sections, types.SectionContent{
			Section: section,
			Text:    text,
		})
	}

	return doc, nil
}

// buildSection runs one section through the full stage sequence.
func (p *Pipeline) buildSection(ctx context.Context, topic string, section types.Section, w io.Writer) (string, error) {
	queries := p.Composer.GenerateQueries(ctx, section.Name, topic, w)

	var b strings.Builder
	gathered := false
	for _, q := range queries {
		if err := p.QueryGate.Wait(ctx); err != nil {
			return "", err
		}

		fullQuery := topic + " " + q
		fmt.Fprintf(w, "scraping for query: %q\n", fullQuery)

		content := p.Aggregator.Aggregate(ctx, fullQuery, w)
		if content != aggregate.Sentinel {
			gathered = true
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	if !gathered && !p.Config.ContinueOnEmpty {
		return "", fmt.Errorf("no usable content gathered from %d queries", len(queries))
	}

	raw := b.String()
	fmt.Fprintf(w, "aggregated raw content length for %s: %d\n", section.Name, len(raw))

	formatted := p.Composer.FormatNarrative(ctx, raw, w)

	limit := p.Config.SectionLimit
	if limit <= 0 {
		limit = DefaultSectionLimit
	}
	return p.Composer.EnforceLimit(ctx, formatted, limit, w), nil
}

// Assemble concatenates the finalized sections into the document text:
// each section as "{name}:\n{content}\n\n" followed by a separator line.
func Assemble(doc *types.Document) string {
	var b strings.Builder
	for _, sec := range doc.Sections {
		fmt.Fprintf(&b, "%s:\n%s\n\n%s\n\n", sec.Section.Name, sec.Text, separator)
	}
	return b.String()
}

// Write serializes the assembled document to path in one shot.
func Write(doc *types.Document, path string) error {
	if err := os.WriteFile(path, []byte(Assemble(doc)), 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}
