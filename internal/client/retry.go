// ABOUTME: Retry decorator with exponential backoff for gateway requests
// ABOUTME: Retries transient failures only; timeouts and 4xx fail immediately

package client

import (
	"context"
	"log/slog"
	"time"
)

// maxBackoff caps the delay between attempts.
const maxBackoff = 4 * time.Second

// Retry runs op, retrying on transient failures up to retries extra attempts.
// The delay before retry n (0-indexed) is min(baseDelay * 2^n, 4s).
//
// A failure is retried only when it is an *APIError whose kind says so:
// network failures and 5xx responses. Timeouts, cancellation, and 4xx are
// surfaced immediately. The retry budget applies uniformly to all verbs:
// the retried conditions mean the gateway either never received the request
// or answered that it could not durably process it, so replaying a POST is
// no worse than replaying a GET. Exhausting the budget returns the last
// error unchanged.
func Retry(ctx context.Context, retries int, baseDelay time.Duration, op func() error) error {
	var lastErr error
	for attempt := 0; ; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		apiErr, ok := AsAPIError(lastErr)
		if !ok || !apiErr.Retryable() || attempt >= retries {
			return lastErr
		}

		delay := backoffDelay(baseDelay, attempt)
		slog.Debug("retrying request",
			"method", apiErr.Method,
			"path", apiErr.Path,
			"kind", apiErr.Kind.String(),
			"attempt", attempt+1,
			"delay", delay,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
}

// backoffDelay returns the capped exponential delay for a 0-indexed attempt.
func backoffDelay(baseDelay time.Duration, attempt int) time.Duration {
	delay := baseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}
