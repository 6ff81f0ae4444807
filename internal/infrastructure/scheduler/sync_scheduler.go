package scheduler

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/application/matching"
	appsync "github.com/blakespencer/debute-backend/internal/application/sync"
	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// SyncRunner is one sync orchestrator as seen by the scheduler.
type SyncRunner interface {
	Sync(ctx context.Context, opts appsync.SyncOptions) (*commerce.SyncResult, error)
}

// Matcher is the matching engine as seen by the scheduler.
type Matcher interface {
	MatchAll(ctx context.Context, opts matching.MatchOptions) (*commerce.MatchResult, error)
}

// SyncScheduler triggers the nightly pipeline: orders, then returns, then a
// matching pass. A tick that fires while a run is still in flight is skipped.
type SyncScheduler struct {
	schedule string
	enabled  bool

	orders  SyncRunner
	returns SyncRunner
	matcher Matcher

	cron    *cron.Cron
	entryID cron.EntryID
	running atomic.Bool
	logger  *zap.Logger
}

// NewSyncScheduler creates a new SyncScheduler.
func NewSyncScheduler(
	schedule string,
	enabled bool,
	orders SyncRunner,
	returns SyncRunner,
	matcher Matcher,
	logger *zap.Logger,
) *SyncScheduler {
	return &SyncScheduler{
		schedule: schedule,
		enabled:  enabled,
		orders:   orders,
		returns:  returns,
		matcher:  matcher,
		cron:     cron.New(),
		logger:   logger.Named("scheduler"),
	}
}

// Start registers the cron entry and starts ticking.
func (s *SyncScheduler) Start() error {
	if !s.enabled {
		s.logger.Info("scheduler disabled")
		return nil
	}

	id, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}
	s.entryID = id
	s.cron.Start()

	s.logger.Info("scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop stops the ticker. An in-flight run is left to finish.
func (s *SyncScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	s.logger.Info("scheduler stopped")
}

// RunOnce executes one full pipeline pass. Returns false when a pass was
// already in flight and this one was skipped.
func (s *SyncScheduler) RunOnce(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Info("sync already running, skipping scheduled run")
		return false
	}
	defer s.running.Store(false)

	s.logger.Info("scheduled sync started")

	if result, err := s.orders.Sync(ctx, appsync.SyncOptions{}); err != nil {
		s.logger.Error("scheduled order sync failed", zap.Error(err))
	} else {
		s.logger.Info("scheduled order sync finished",
			zap.Int("processed", result.Processed),
			zap.Int("errors", len(result.Errors)),
		)
	}

	if result, err := s.returns.Sync(ctx, appsync.SyncOptions{}); err != nil {
		s.logger.Error("scheduled return sync failed", zap.Error(err))
	} else {
		s.logger.Info("scheduled return sync finished",
			zap.Int("processed", result.Processed),
			zap.Int("errors", len(result.Errors)),
		)
	}

	if result, err := s.matcher.MatchAll(ctx, matching.MatchOptions{}); err != nil {
		s.logger.Error("scheduled matching failed", zap.Error(err))
	} else {
		s.logger.Info("scheduled matching finished",
			zap.Int("processed", result.TotalProcessed),
			zap.Int("matched", result.SuccessfulMatches),
		)
	}

	s.logger.Info("scheduled sync finished")
	return true
}
