// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai calls the Claude Messages API and normalizes its reply shapes.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultAPIBase is the Claude Messages endpoint.
const DefaultAPIBase = "https://api.anthropic.com/v1/messages"

// apiVersion is the anthropic-version header value.
const apiVersion = "2023-06-01"

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-3-5-sonnet-latest"

// Client calls the Claude Messages API. Each pipeline operation supplies
// its own prompt, token budget, and timeout.
type Client struct {
	APIKey string
	Model  string

	// BaseURL overrides the API endpoint; tests point it at an
	// httptest server. Empty means DefaultAPIBase.
	BaseURL string

	HTTPClient *http.Client
}

// request is the Messages API request body.
type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

// message is a single message in the API conversation.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends a single user message and returns the reply's text
// payload. The timeout bounds the whole call, layered on top of any
// deadline already present in ctx.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int, timeout time.Duration) (TextPayload, error) {
	model := c.Model
	if model == "" {
		model = DefaultModel
	}

	body, err := json.Marshal(request{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return TextPayload{}, fmt.Errorf("marshaling request: %w", err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultAPIBase
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base, bytes.NewReader(body))
	if err != nil {
		return TextPayload{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return TextPayload{}, fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return TextPayload{}, fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(errBody))
	}

	payload, err := ParseReply(resp.Body)
	if err != nil {
		return TextPayload{}, fmt.Errorf("decoding Claude response: %w", err)
	}
	return payload, nil
}
