package matching

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

const defaultBatchSize = 100

// MatchOptions controls one reconciliation pass.
type MatchOptions struct {
	// BatchSize caps how many unmatched returns are selected; defaults to 100.
	BatchSize int
	// DryRun computes the same counts without persisting any match.
	DryRun bool
	// StoreDomain optionally scopes the pass to one storefront store.
	StoreDomain string
}

// Service reconciles synced returns against synced orders. A pure local pass:
// no retry, no backoff, and each record is independent, so one failure never
// stops the batch.
type Service struct {
	stores  commerce.StoreRepository
	orders  commerce.OrderRepository
	returns commerce.ReturnRepository
	logger  *zap.Logger
}

// NewService creates a new matching Service.
func NewService(
	stores commerce.StoreRepository,
	orders commerce.OrderRepository,
	returns commerce.ReturnRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		stores:  stores,
		orders:  orders,
		returns: returns,
		logger:  logger.Named("matching"),
	}
}

// MatchAll selects up to BatchSize unmatched returns carrying a foreign order
// reference and marks those whose referenced order exists locally.
func (s *Service) MatchAll(ctx context.Context, opts MatchOptions) (*commerce.MatchResult, error) {
	storeID, err := s.resolveStoreID(ctx, opts.StoreDomain)
	if err != nil {
		return nil, err
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	result := commerce.NewMatchResult(opts.DryRun)

	batch, err := s.returns.FindUnmatchedBatch(ctx, batchSize, storeID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("matching pass started",
		zap.Int("batch", len(batch)),
		zap.Bool("dry_run", opts.DryRun),
	)

	for i := range batch {
		record := &batch[i]
		result.TotalProcessed++

		if record.IsMatched {
			result.AlreadyMatched++
			continue
		}

		candidate := resolveCandidate(record)
		if candidate == "" {
			result.Skipped++
			continue
		}

		exists, err := s.orders.ExistsByShopifyOrderID(ctx, record.StoreID, candidate)
		if err != nil {
			result.AddError(record.SwapReturnID, err)
			continue
		}
		if !exists {
			result.NotFound++
			continue
		}

		if !opts.DryRun {
			if err := s.returns.MarkMatched(ctx, record.ID, candidate); err != nil {
				result.AddError(record.SwapReturnID, err)
				continue
			}
		}
		result.SuccessfulMatches++
	}

	s.logger.Info("matching pass finished",
		zap.Int("processed", result.TotalProcessed),
		zap.Int("matched", result.SuccessfulMatches),
		zap.Int("not_found", result.NotFound),
		zap.Int("errors", len(result.Errors)),
	)
	return result.Finish(), nil
}

// FindUnmatched lists returns whose foreign order reference has no local
// order. Read-only operator visibility.
func (s *Service) FindUnmatched(ctx context.Context, limit int, storeDomain string) ([]commerce.UnmatchedReturn, error) {
	storeID, err := s.resolveStoreID(ctx, storeDomain)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultBatchSize
	}
	return s.returns.FindUnmatchable(ctx, limit, storeID)
}

// resolveStoreID maps an optional store domain to its local ID.
func (s *Service) resolveStoreID(ctx context.Context, storeDomain string) (*uuid.UUID, error) {
	if storeDomain == "" {
		return nil, nil
	}
	store, err := s.stores.FindByDomain(ctx, commerce.PlatformShopify, storeDomain)
	if err != nil {
		return nil, err
	}
	return &store.ID, nil
}

// resolveCandidate picks the canonical order identifier for a return: the
// already-resolved identifier when present, otherwise the normalized foreign
// reference.
func resolveCandidate(record *commerce.ReturnRecord) string {
	if record.ShopifyOrderID != nil && *record.ShopifyOrderID != "" {
		return *record.ShopifyOrderID
	}
	if record.SwapOrderID == "" {
		return ""
	}
	return commerce.ExtractNumericID(record.SwapOrderID)
}
