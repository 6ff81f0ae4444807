package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
	"github.com/blakespencer/debute-backend/internal/infrastructure/httpx"
)

// ReturnSyncService pulls returns from the returns platform page by page.
//
// Returns are owned by the merchant's storefront store so reconciliation can
// join them against orders; the returns-platform store row only tracks the
// sync window for this pipeline. When a return's foreign order reference
// resolves to an order already known locally, the resolved identifier is
// stored eagerly; the matched flag itself is owned by the matching engine.
type ReturnSyncService struct {
	swap     storeResolver
	merchant storeResolver
	returns  commerce.ReturnRepository
	orders   commerce.OrderRepository
	gateway  commerce.SwapGateway
	settings Settings
	logger   *zap.Logger
}

// NewReturnSyncService creates a new ReturnSyncService. The swap credentials
// authenticate against the returns platform; the storefront credentials
// identify the merchant store that owns the synced records.
func NewReturnSyncService(
	stores commerce.StoreRepository,
	returns commerce.ReturnRepository,
	orders commerce.OrderRepository,
	gateway commerce.SwapGateway,
	swapStore, apiKey string,
	storeDomain, accessToken string,
	settings Settings,
	logger *zap.Logger,
) *ReturnSyncService {
	return &ReturnSyncService{
		swap: storeResolver{
			stores:   stores,
			platform: commerce.PlatformSwap,
			domain:   swapStore,
			token:    apiKey,
		},
		merchant: storeResolver{
			stores:   stores,
			platform: commerce.PlatformShopify,
			domain:   storeDomain,
			token:    accessToken,
		},
		returns:  returns,
		orders:   orders,
		gateway:  gateway,
		settings: settings.withDefaults(),
		logger:   logger.Named("return_sync"),
	}
}

// Sync runs one return sync pass over the window.
func (s *ReturnSyncService) Sync(ctx context.Context, opts SyncOptions) (*commerce.SyncResult, error) {
	swapStore, err := s.swap.resolve(ctx, "")
	if err != nil {
		return nil, err
	}
	merchant, err := s.merchant.resolve(ctx, opts.StoreDomain)
	if err != nil {
		return nil, err
	}

	result := commerce.NewSyncResult()
	from := swapStore.SyncWindowStart(result.StartedAt, s.settings.Lookback)
	if opts.FromDate != nil {
		from = *opts.FromDate
	}

	remaining := -1
	if opts.Limit > 0 {
		remaining = opts.Limit
	}

	s.logger.Info("return sync started",
		zap.String("store", merchant.ExternalDomain),
		zap.Time("from", from),
		zap.Int("limit", opts.Limit),
	)

	pageNum := 1
	runFailed := false
	for {
		page, err := s.gateway.FetchReturns(ctx, commerce.ReturnPageRequest{
			Page:         pageNum,
			ItemsPerPage: s.settings.pageSize(remaining),
			FromDate:     from,
			ToDate:       result.StartedAt,
		})
		if err != nil {
			result.AddError("", fmt.Sprintf("page %d", pageNum), err)
			runFailed = true
			s.logger.Error("return page fetch failed", zap.Int("page", pageNum), zap.Error(err))
			break
		}
		result.Pages++

		for i := range page.Returns {
			record := &page.Returns[i]
			record.StoreID = merchant.ID
			s.resolveOrderReference(ctx, record)

			created, err := s.returns.Upsert(ctx, record)
			if err != nil {
				result.AddError(record.SwapReturnID, record.OrderName, err)
				continue
			}
			result.Processed++
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		if remaining >= 0 {
			remaining -= len(page.Returns)
			if remaining <= 0 {
				break
			}
		}
		if !page.HasNextPage {
			break
		}
		pageNum++

		if err := httpx.SleepContext(ctx, s.settings.InterPageDelay); err != nil {
			result.AddError("", "inter-page delay", err)
			runFailed = true
			break
		}
	}

	if !runFailed {
		if err := s.swap.stores.TouchLastSynced(ctx, swapStore.ID, result.StartedAt); err != nil {
			s.logger.Warn("failed to bump last synced timestamp", zap.Error(err))
		}
	}

	s.logger.Info("return sync finished",
		zap.Int("processed", result.Processed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("pages", result.Pages),
		zap.Int("errors", len(result.Errors)),
	)
	return result.Finish(), nil
}

// resolveOrderReference fills the resolved order identifier when the
// referenced order already exists locally. Lookup failures are left for the
// matching engine to retry; they never fail the record.
func (s *ReturnSyncService) resolveOrderReference(ctx context.Context, record *commerce.ReturnRecord) {
	if record.ShopifyOrderID != nil || record.SwapOrderID == "" {
		return
	}
	candidate := commerce.ExtractNumericID(record.SwapOrderID)
	exists, err := s.orders.ExistsByShopifyOrderID(ctx, record.StoreID, candidate)
	if err != nil || !exists {
		return
	}
	record.ShopifyOrderID = &candidate
}
