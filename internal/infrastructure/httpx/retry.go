// Package httpx holds the shared retry policy for outbound platform clients.
package httpx

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// Policy describes the backoff applied between retryable attempts.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// Delay computes the wait before the next attempt: the server-supplied delay
// when present, otherwise base_delay * 2^attempt plus 0-10% jitter, capped at
// MaxDelay.
func (p Policy) Delay(attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		if retryAfter > p.MaxDelay {
			return p.MaxDelay
		}
		return retryAfter
	}

	delay := p.BaseDelay << uint(attempt)
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	jitter := time.Duration(rand.Int63n(int64(delay)/10 + 1))
	delay += jitter
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// ClassifyStatus maps an HTTP status to the commerce error taxonomy. The
// returned retryAfter is non-zero only for rate-limit responses carrying a
// parseable Retry-After header.
func ClassifyStatus(status int, retryAfterHeader string) (error, time.Duration) {
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: HTTP 429", commerce.ErrRateLimited), ParseRetryAfter(retryAfterHeader)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: HTTP %d", commerce.ErrAuth, status), 0
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: HTTP 404", commerce.ErrNotFound), 0
	case status >= 500:
		return fmt.Errorf("%w: HTTP %d", commerce.ErrServerError, status), 0
	case status >= 400:
		return fmt.Errorf("%w: HTTP %d", commerce.ErrInvalidResponse, status), 0
	default:
		return nil, 0
	}
}

// ParseRetryAfter parses a Retry-After header given in seconds.
func ParseRetryAfter(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// SleepContext waits for the delay or until the context is cancelled.
func SleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
