// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TextPayload is the normalized text content of an API reply. The API
// nests content either as a plain string or as a sequence of typed
// blocks, and either at the top level ("content") or under a messages
// list; ParseReply collapses all four shapes into the Blocks slice so
// call sites never inspect raw JSON. Non-text blocks are dropped.
type TextPayload struct {
	// Blocks holds the textual blocks in reply order. A plain-string
	// reply becomes a single block.
	Blocks []string
}

// IsEmpty reports whether the payload carries no text after trimming.
func (p TextPayload) IsEmpty() bool {
	for _, b := range p.Blocks {
		if strings.TrimSpace(b) != "" {
			return false
		}
	}
	return true
}

// JoinLines concatenates the blocks with newline separators. Used where
// the reply is line-oriented (one search query per line).
func (p TextPayload) JoinLines() string {
	return strings.Join(p.Blocks, "\n")
}

// JoinSpaces concatenates the blocks with single spaces. Used where the
// reply should read as continuous prose.
func (p TextPayload) JoinSpaces() string {
	return strings.Join(p.Blocks, " ")
}

// replyEnvelope captures the two places reply content can appear. Raw
// messages defer shape decisions to decodeContent.
type replyEnvelope struct {
	Content  json.RawMessage `json:"content"`
	Messages []struct {
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

// contentBlock is one element of a block-list content value.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ParseReply decodes an API reply body and extracts its text payload.
// Malformed JSON is an error; a well-formed reply with no recognizable
// text yields an empty payload, which callers treat as a failed
// operation and replace with their fallback value.
func ParseReply(r io.Reader) (TextPayload, error) {
	var env replyEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return TextPayload{}, fmt.Errorf("parsing reply envelope: %w", err)
	}

	if len(env.Content) > 0 {
		return decodeContent(env.Content), nil
	}
	if len(env.Messages) > 0 {
		return decodeContent(env.Messages[0].Content), nil
	}
	return TextPayload{}, nil
}

// decodeContent normalizes a content value that is either a plain string
// or a list of typed blocks. Unrecognized shapes yield an empty payload.
func decodeContent(raw json.RawMessage) TextPayload {
	if len(raw) == 0 {
		return TextPayload{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return TextPayload{}
		}
		return TextPayload{Blocks: []string{s}}
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var p TextPayload
		for _, b := range blocks {
			if b.Type != "" && b.Type != "text" {
				continue
			}
			p.Blocks = append(p.Blocks, b.Text)
		}
		return p
	}

	return TextPayload{}
}
