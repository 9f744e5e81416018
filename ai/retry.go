package ai

import (
	relayerrors "chat-relay/errors"
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultMaxAttempts = 3

	baseBackoff = 1 * time.Second
	maxBackoff  = 10 * time.Second
)

// Retryable classifies a provider failure. Transient faults are worth
// another attempt: network errors, timeouts, provider-side rate
// limiting, 5xx responses, and an empty completion. Everything else
// (bad key, malformed request, content policy refusal) is terminal.
func Retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests ||
			statusErr.Code == http.StatusRequestTimeout ||
			statusErr.Code >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, relayerrors.ErrEmptyResponse) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// Backoff returns the pause before the next attempt: exponential in the
// attempt number, capped, with ±50% jitter to avoid a thundering herd
// of retries landing together.
func Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := baseBackoff << (attempt - 1)
	if delay > maxBackoff {
		delay = maxBackoff
	}
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(delay) * jitter)
}
