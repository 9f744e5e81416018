package ai

import (
	"bytes"
	"chat-relay/errors"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAnthropicURL = "https://api.anthropic.com/v1/messages"

// AnthropicClient calls the Anthropic messages API directly.
type AnthropicClient struct {
	URL        string
	APIKey     string
	APIVersion string
	HTTP       *http.Client
}

func NewAnthropicClient(url, apiKey, apiVersion string) *AnthropicClient {
	if url == "" {
		url = defaultAnthropicURL
	}
	return &AnthropicClient{
		URL:        strings.TrimRight(url, "/"),
		APIKey:     apiKey,
		APIVersion: apiVersion,
		HTTP:       &http.Client{},
	}
}

func (c *AnthropicClient) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *AnthropicClient) Complete(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	body, err := json.Marshal(anthropicRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      req.System,
		Messages:    req.Messages,
	})
	if err != nil {
		return Result{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.APIKey)
	httpReq.Header.Set("anthropic-version", c.APIVersion)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	var out anthropicResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return Result{}, &StatusError{Code: resp.StatusCode, Message: string(raw)}
		}
		return Result{}, fmt.Errorf("anthropic: decoding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(raw)
		if out.Error != nil && out.Error.Message != "" {
			msg = fmt.Sprintf("%s: %s", out.Error.Type, out.Error.Message)
		}
		return Result{}, &StatusError{Code: resp.StatusCode, Message: msg}
	}

	text := ""
	for _, block := range out.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return Result{}, errors.ErrEmptyResponse
	}

	return Result{Text: text, Duration: time.Since(start)}, nil
}
