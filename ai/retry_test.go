package ai

import (
	relayerrors "chat-relay/errors"
	"context"
	"fmt"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "provider rate limit", err: &StatusError{Code: 429}, retryable: true},
		{name: "server error", err: &StatusError{Code: 500}, retryable: true},
		{name: "bad gateway", err: &StatusError{Code: 502}, retryable: true},
		{name: "request timeout status", err: &StatusError{Code: 408}, retryable: true},
		{name: "deadline exceeded", err: context.DeadlineExceeded, retryable: true},
		{name: "wrapped deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), retryable: true},
		{name: "network error", err: &net.DNSError{IsTimeout: true}, retryable: true},
		{name: "url transport error", err: &url.Error{Op: "Post", Err: fmt.Errorf("refused")}, retryable: true},
		{name: "empty completion", err: relayerrors.ErrEmptyResponse, retryable: true},
		{name: "invalid api key", err: &StatusError{Code: 401}, retryable: false},
		{name: "malformed request", err: &StatusError{Code: 400}, retryable: false},
		{name: "content policy refusal", err: &StatusError{Code: 403}, retryable: false},
		{name: "unknown error", err: fmt.Errorf("boom"), retryable: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.retryable, Retryable(tt.err))
		})
	}
}

// The backoff curve doubles per attempt, stays under the cap, and
// jitter keeps every sample inside [0.5x, 1.5x] of the nominal delay.
func TestBackoff(t *testing.T) {
	req := require.New(t)

	for attempt, nominal := range map[int]time.Duration{
		1: 1 * time.Second,
		2: 2 * time.Second,
		3: 4 * time.Second,
		9: maxBackoff,
	} {
		for i := 0; i < 100; i++ {
			delay := Backoff(attempt)
			req.GreaterOrEqual(delay, nominal/2, "attempt=%d", attempt)
			req.LessOrEqual(delay, nominal*3/2, "attempt=%d", attempt)
		}
	}
}
