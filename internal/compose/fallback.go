// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

// Fallback policy for the compose operations, declared in one place:
// when a generative call fails or parses to nothing, the operation
// substitutes the value produced here and the run continues. A broken
// credential or endpoint therefore degrades output quality rather than
// aborting; the orchestrator's ContinueOnEmpty setting is the explicit
// knob for callers that would rather fail.

// TruncationMarker is appended whenever text is hard-truncated to meet
// a length limit.
const TruncationMarker = " [Content truncated]"

// fallbackQueries is the default for a failed query generation: one
// synthesized query combining topic and section.
func fallbackQueries(topic, section string) []string {
	return []string{topic + " " + section}
}

// fallbackNarrative is the default for a failed narrative formatting:
// the raw text passes through unchanged.
func fallbackNarrative(raw string) string {
	return raw
}

// fallbackTruncate is the default for a failed or non-compliant length
// rewrite: hard truncation to exactly limit characters plus the marker.
// Truncation happens on rune boundaries so the result stays valid UTF-8.
func fallbackTruncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + TruncationMarker
}
