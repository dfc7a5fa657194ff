// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-writer pipeline.
package types

import "time"

// Section describes one named subdivision of the output document.
type Section struct {
	// Name is the section heading (e.g. "Introduction").
	Name string `json:"name" yaml:"name"`

	// Description is a short instruction explaining what the section covers.
	Description string `json:"description" yaml:"description"`
}

// Outline holds the ordered list of sections a document is built from.
type Outline struct {
	// Sections lists the document's sections in output order.
	Sections []Section `json:"sections" yaml:"sections"`
}

// SectionContent is the finalized text for one document section.
type SectionContent struct {
	// Section is the section this content belongs to.
	Section Section `json:"section" yaml:"section"`

	// Text is the formatted, length-enforced prose.
	Text string `json:"text" yaml:"text"`
}

// Document is the assembled research document: finalized sections in
// outline order. It is built once per run, written once, then discarded.
type Document struct {
	// Topic is the user-supplied research topic.
	Topic string `json:"topic" yaml:"topic"`

	// Sections lists the finalized sections in outline order.
	Sections []SectionContent `json:"sections" yaml:"sections"`
}

// Run records one completed pipeline execution in the archive.
type Run struct {
	// ID is the archive row identifier.
	ID int64 `json:"id" yaml:"id"`

	// Topic is the research topic the document was generated for.
	Topic string `json:"topic" yaml:"topic"`

	// Model is the generative model identifier used for the run.
	Model string `json:"model" yaml:"model"`

	// OutputPath is where the assembled document was written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Started and Finished bound the run's wall-clock duration.
	Started  time.Time `json:"started" yaml:"started"`
	Finished time.Time `json:"finished" yaml:"finished"`
}

// RunSection records the size of one finalized section within an archived run.
type RunSection struct {
	// Position is the section's zero-based position in the outline.
	Position int `json:"position" yaml:"position"`

	// Name is the section heading.
	Name string `json:"name" yaml:"name"`

	// Chars is the finalized section's character count.
	Chars int `json:"chars" yaml:"chars"`
}
