package httpx

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

func TestPolicyDelay(t *testing.T) {
	policy := Policy{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}

	// Server-supplied delay wins but is capped.
	assert.Equal(t, 500*time.Millisecond, policy.Delay(0, 500*time.Millisecond))
	assert.Equal(t, time.Second, policy.Delay(0, 10*time.Second))

	// Exponential growth with at most 10% jitter, never past the cap.
	for attempt := 0; attempt < 6; attempt++ {
		delay := policy.Delay(attempt, 0)
		base := 100 * time.Millisecond << uint(attempt)
		if base > time.Second {
			base = time.Second
		}
		assert.GreaterOrEqual(t, delay, base)
		assert.LessOrEqual(t, delay, time.Second)
	}
}

func TestClassifyStatus(t *testing.T) {
	err, retryAfter := ClassifyStatus(http.StatusTooManyRequests, "2")
	assert.ErrorIs(t, err, commerce.ErrRateLimited)
	assert.Equal(t, 2*time.Second, retryAfter)

	err, _ = ClassifyStatus(http.StatusUnauthorized, "")
	assert.ErrorIs(t, err, commerce.ErrAuth)

	err, _ = ClassifyStatus(http.StatusForbidden, "")
	assert.ErrorIs(t, err, commerce.ErrAuth)

	err, _ = ClassifyStatus(http.StatusNotFound, "")
	assert.ErrorIs(t, err, commerce.ErrNotFound)

	err, _ = ClassifyStatus(http.StatusBadGateway, "")
	assert.ErrorIs(t, err, commerce.ErrServerError)

	err, _ = ClassifyStatus(http.StatusUnprocessableEntity, "")
	assert.ErrorIs(t, err, commerce.ErrInvalidResponse)

	err, _ = ClassifyStatus(http.StatusOK, "")
	assert.NoError(t, err)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseRetryAfter("2"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter(""))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("soon"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("-1"))
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, SleepContext(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Minute), context.Canceled)
}
