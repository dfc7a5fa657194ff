// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Scraping
	// uses a browser-like value; API calls use "paper-writer/<version>".
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the search backend: "brave" or "serper".
	Provider string `json:"provider" yaml:"provider"`

	// APIKey authenticates against the selected provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// NumURLs is the number of result URLs requested per query (default 3).
	NumURLs int `json:"num_urls" yaml:"num_urls"`
}

// ScrapeConfig holds settings for the page fetch stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// Mode selects text extraction: "elements" (headings and paragraphs,
	// or a CSS selector when supplied) or "readability" (main-article text).
	Mode string `json:"mode" yaml:"mode"`

	// Selector is an optional CSS selector restricting element extraction.
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`

	// MinLength is the minimum extracted text length for a page to be
	// included in aggregated content (default 100).
	MinLength int `json:"min_length" yaml:"min_length"`

	// FetchInterval is the minimum interval between consecutive page
	// fetches (default 1s). A blunt throttle against anti-scraping defenses.
	FetchInterval time.Duration `json:"fetch_interval" yaml:"fetch_interval"`
}

// AIConfig holds settings for stages that call the generative text API.
type AIConfig struct {
	// Model is the model identifier (e.g. "claude-3-5-sonnet-latest").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// QueryTimeout bounds search-query generation calls (default 15s).
	QueryTimeout time.Duration `json:"query_timeout" yaml:"query_timeout"`

	// FormatTimeout bounds narrative formatting calls (default 20s).
	FormatTimeout time.Duration `json:"format_timeout" yaml:"format_timeout"`

	// LimitTimeout bounds length-enforcement calls (default 25s).
	LimitTimeout time.Duration `json:"limit_timeout" yaml:"limit_timeout"`
}

// DraftConfig holds settings for the orchestration and assembly stage.
type DraftConfig struct {
	// OutputPath is the file the assembled document is written to
	// (default "research_paper.txt").
	OutputPath string `json:"output_path" yaml:"output_path"`

	// SectionLimit is the per-section character cap (default 50000).
	SectionLimit int `json:"section_limit" yaml:"section_limit"`

	// QueryInterval is the minimum interval between aggregations for
	// successive queries within a section (default 1s).
	QueryInterval time.Duration `json:"query_interval" yaml:"query_interval"`

	// SectionInterval is the minimum interval between sections (default 2s).
	SectionInterval time.Duration `json:"section_interval" yaml:"section_interval"`

	// ContinueOnEmpty controls what happens when a section gathers no
	// usable content from any query: true keeps going and lets the
	// placeholder text flow through formatting (the permissive default),
	// false aborts the run with an error. Named here so the policy is an
	// explicit choice rather than an implicit fallback chain.
	ContinueOnEmpty bool `json:"continue_on_empty" yaml:"continue_on_empty"`
}

// ArchiveConfig holds settings for the run archive.
type ArchiveConfig struct {
	// Dir is the directory holding the archive database (default ".paper-writer").
	Dir string `json:"dir" yaml:"dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Draft   DraftConfig   `json:"draft" yaml:"draft"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}
