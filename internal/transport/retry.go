package transport

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
)

// RetryTransport wraps another transport with exponential backoff on
// transient failures. 5xx and 429 responses are retried; any other status
// is handed straight back, since the engine normalizes processor errors
// itself.
type RetryTransport struct {
	inner      connector.Transport
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryTransport(inner connector.Transport, cfg config.RetryConfig) *RetryTransport {
	return &RetryTransport{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: int(cfg.MaxRetries),
	}
}

func (r *RetryTransport) Send(ctx context.Context, req *connector.Request) (*connector.Response, error) {
	var lastErr error
	var lastResp *connector.Response

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := r.inner.Send(ctx, req)
		if err == nil && !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = err
		lastResp = resp

		if err != nil && !isRetryableError(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	if lastResp != nil {
		// Exhausted retries on a 5xx; let the engine normalize it.
		return lastResp, nil
	}
	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode >= 500 || statusCode == 429
}

func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}

// Backoff calculation with exponential delay and jitter.
func (r *RetryTransport) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
