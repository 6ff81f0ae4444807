package commerce

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimited))
	assert.True(t, IsRetryable(ErrServerError))
	assert.True(t, IsRetryable(ErrTransport))
	assert.True(t, IsRetryable(fmt.Errorf("%w: HTTP 503", ErrServerError)))

	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(ErrAuth))
	assert.False(t, IsRetryable(ErrNotFound))
	assert.False(t, IsRetryable(ErrGraphQL))
	assert.False(t, IsRetryable(errors.New("unclassified")))
}

func TestIsRunFatal(t *testing.T) {
	assert.True(t, IsRunFatal(ErrAuth))
	assert.True(t, IsRunFatal(ErrGraphQL))
	assert.True(t, IsRunFatal(&MaxRetriesError{Attempts: 4, Last: ErrServerError}))

	assert.False(t, IsRunFatal(nil))
	assert.False(t, IsRunFatal(ErrNotFound))
	assert.False(t, IsRunFatal(ErrValidation))
}

func TestMaxRetriesError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("%w: HTTP 500", ErrServerError)
	err := &MaxRetriesError{Attempts: 3, Last: inner}

	assert.ErrorIs(t, err, ErrServerError)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestStoreSyncWindowStart(t *testing.T) {
	store := NewStore(PlatformShopify, "example.myshopify.com", "token")
	now := store.CreatedAt

	// Never synced: fall back to the lookback window.
	lookback := 30 * 24 * time.Hour
	assert.Equal(t, now.Add(-lookback), store.SyncWindowStart(now, lookback))

	last := now.Add(-time.Minute)
	store.LastSyncedAt = &last
	assert.Equal(t, last, store.SyncWindowStart(now, lookback))
}

func TestValidation(t *testing.T) {
	order := &Order{}
	assert.ErrorIs(t, order.Validate(), ErrValidation)

	ret := &ReturnRecord{}
	assert.ErrorIs(t, ret.Validate(), ErrValidation)

	store := NewStore(Platform("BOGUS"), "d", "t")
	assert.ErrorIs(t, store.Validate(), ErrValidation)
}
