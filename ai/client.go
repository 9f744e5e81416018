// Package ai talks to the hosted language-model API. It is the only
// component performing network I/O toward the provider, and the only
// one whose latency is not bounded by local CPU.
package ai

import (
	"context"
	"fmt"
	"time"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request is one prompt submitted to a provider, already assembled and
// within the prompt budget.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

type Result struct {
	Text     string
	Duration time.Duration
}

// IClient is a single round trip to one provider, no retry policy.
type IClient interface {
	Name() string
	Complete(ctx context.Context, req Request) (Result, error)
}

// StatusError is an HTTP-level provider failure. Both clients normalize
// to it so the retry policy can classify without knowing the provider.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider http %d: %s", e.Code, e.Message)
}

type FailureKind int

const (
	// FailureUnavailable covers transient faults: network errors,
	// provider-side rate limiting, 5xx responses, timeouts. The retry
	// budget was exhausted before this surfaced.
	FailureUnavailable FailureKind = iota + 1
	// FailureRejected covers non-retryable faults: bad API key,
	// malformed request, content policy refusal.
	FailureRejected
)

func (k FailureKind) String() string {
	switch k {
	case FailureUnavailable:
		return "provider unavailable"
	case FailureRejected:
		return "provider rejected"
	default:
		return "unknown"
	}
}

// Failure is the terminal error of a Complete call, after any retries.
type Failure struct {
	Kind     FailureKind
	Attempts int
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s after %d attempt(s): %v", f.Kind, f.Attempts, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }
