package ai

import (
	"chat-relay/errors"
	"context"
	stderrors "errors"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient serves OpenAI-compatible endpoints through the SDK, for
// deployments pointing the relay at such a provider instead of the
// Anthropic API.
type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(baseURL, apiKey string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}
}

func (c *OpenAIClient) Name() string { return "openai" }

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		var apiErr *openai.APIError
		if stderrors.As(err, &apiErr) {
			return Result{}, &StatusError{Code: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return Result{}, err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Result{}, errors.ErrEmptyResponse
	}

	return Result{Text: resp.Choices[0].Message.Content, Duration: time.Since(start)}, nil
}
