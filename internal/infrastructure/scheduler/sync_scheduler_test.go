package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/application/matching"
	appsync "github.com/blakespencer/debute-backend/internal/application/sync"
	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

type stubRunner struct {
	mu    sync.Mutex
	calls int
	block chan struct{}
}

func (s *stubRunner) Sync(ctx context.Context, opts appsync.SyncOptions) (*commerce.SyncResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return commerce.NewSyncResult().Finish(), nil
}

func (s *stubRunner) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubMatcher struct {
	mu    sync.Mutex
	calls int
}

func (s *stubMatcher) MatchAll(ctx context.Context, opts matching.MatchOptions) (*commerce.MatchResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return commerce.NewMatchResult(opts.DryRun).Finish(), nil
}

func (s *stubMatcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRunOnce_Sequence(t *testing.T) {
	orders := &stubRunner{}
	returns := &stubRunner{}
	matcher := &stubMatcher{}
	s := NewSyncScheduler("0 2 * * *", true, orders, returns, matcher, zap.NewNop())

	ran := s.RunOnce(context.Background())
	assert.True(t, ran)
	assert.Equal(t, 1, orders.callCount())
	assert.Equal(t, 1, returns.callCount())
	assert.Equal(t, 1, matcher.callCount())
}

func TestRunOnce_SkipsWhileInFlight(t *testing.T) {
	block := make(chan struct{})
	orders := &stubRunner{block: block}
	returns := &stubRunner{}
	matcher := &stubMatcher{}
	s := NewSyncScheduler("0 2 * * *", true, orders, returns, matcher, zap.NewNop())

	done := make(chan bool)
	go func() {
		done <- s.RunOnce(context.Background())
	}()

	// Wait for the first run to enter the order sync.
	require.Eventually(t, func() bool {
		return orders.callCount() == 1
	}, time.Second, time.Millisecond)

	assert.False(t, s.RunOnce(context.Background()))

	close(block)
	assert.True(t, <-done)
	assert.Equal(t, 1, orders.callCount())
}

func TestStart_Disabled(t *testing.T) {
	s := NewSyncScheduler("0 2 * * *", false, &stubRunner{}, &stubRunner{}, &stubMatcher{}, zap.NewNop())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewSyncScheduler("not a schedule", true, &stubRunner{}, &stubRunner{}, &stubMatcher{}, zap.NewNop())
	assert.Error(t, s.Start())
}
