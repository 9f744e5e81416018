//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=../mocks/mock_provider.go -package=mocks
package ai

import (
	"chat-relay/conversation"
	"context"
	"log/slog"
	"time"
)

type Config struct {
	Model              string
	SystemPrompt       string
	MaxTokens          int
	Temperature        float64
	RequestTimeout     time.Duration
	MaxAttempts        int
	MaxResponseLength  int
	PromptBudgetTokens int
}

// IProvider is what the dispatcher sees: one completion, retries and
// truncation already applied.
type IProvider interface {
	Complete(ctx context.Context, prior conversation.Exchange, userText string) (string, error)
	ClientName() string
}

// Provider wraps a client with the resilience policy: per-attempt
// timeout, bounded retry with jittered exponential backoff, and
// response-length capping.
type Provider struct {
	client IClient
	cfg    Config
	log    *slog.Logger
	sleep  func(ctx context.Context, d time.Duration)
}

func NewProvider(client IClient, cfg Config, log *slog.Logger) *Provider {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &Provider{client: client, cfg: cfg, log: log, sleep: sleepContext}
}

// Complete runs the retry loop. A timeout expiry counts as a transient
// failure and consumes an attempt. On exhaustion the last error is
// surfaced as FailureUnavailable; a non-retryable error short-circuits
// as FailureRejected.
func (p *Provider) Complete(ctx context.Context, prior conversation.Exchange, userText string) (string, error) {
	req := Request{
		Model:       p.cfg.Model,
		System:      p.cfg.SystemPrompt,
		Messages:    BuildMessages(prior, userText, p.cfg.PromptBudgetTokens),
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	p.log.Debug("provider request",
		"provider", p.client.Name(),
		"model", req.Model,
		"system", req.System,
		"messages", req.Messages,
	)

	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		result, err := p.attempt(ctx, req)
		if err == nil {
			p.log.Debug("provider response",
				"provider", p.client.Name(),
				"attempt", attempt,
				"latency", result.Duration,
				"text", result.Text,
			)
			return TruncateResponse(result.Text, p.cfg.MaxResponseLength), nil
		}

		lastErr = err
		if !Retryable(err) {
			p.log.Error("provider rejected request",
				"provider", p.client.Name(),
				"attempt", attempt,
				"err", err,
			)
			return "", &Failure{Kind: FailureRejected, Attempts: attempt, Err: err}
		}

		p.log.Warn("provider call failed",
			"provider", p.client.Name(),
			"attempt", attempt,
			"err", err,
		)
		if attempt < p.cfg.MaxAttempts {
			p.sleep(ctx, Backoff(attempt))
		}
	}

	return "", &Failure{Kind: FailureUnavailable, Attempts: p.cfg.MaxAttempts, Err: lastErr}
}

func (p *Provider) ClientName() string { return p.client.Name() }

func (p *Provider) attempt(ctx context.Context, req Request) (Result, error) {
	if p.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.RequestTimeout)
		defer cancel()
	}
	return p.client.Complete(ctx, req)
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
