package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
	"github.com/blakespencer/debute-backend/internal/infrastructure/httpx"
)

// OrderSyncService pulls storefront orders page by page and upserts them
// idempotently. Per-record failures are accumulated; run-level failures stop
// paging but still yield a result.
type OrderSyncService struct {
	resolver storeResolver
	orders   commerce.OrderRepository
	gateway  commerce.ShopifyGateway
	settings Settings
	logger   *zap.Logger
}

// NewOrderSyncService creates a new OrderSyncService for the configured
// storefront account.
func NewOrderSyncService(
	stores commerce.StoreRepository,
	orders commerce.OrderRepository,
	gateway commerce.ShopifyGateway,
	storeDomain, accessToken string,
	settings Settings,
	logger *zap.Logger,
) *OrderSyncService {
	return &OrderSyncService{
		resolver: storeResolver{
			stores:   stores,
			platform: commerce.PlatformShopify,
			domain:   storeDomain,
			token:    accessToken,
		},
		orders:   orders,
		gateway:  gateway,
		settings: settings.withDefaults(),
		logger:   logger.Named("order_sync"),
	}
}

// Sync runs one order sync pass over the window.
func (s *OrderSyncService) Sync(ctx context.Context, opts SyncOptions) (*commerce.SyncResult, error) {
	store, err := s.resolver.resolve(ctx, opts.StoreDomain)
	if err != nil {
		return nil, err
	}

	result := commerce.NewSyncResult()
	from := store.SyncWindowStart(result.StartedAt, s.settings.Lookback)
	if opts.FromDate != nil {
		from = *opts.FromDate
	}

	remaining := -1
	if opts.Limit > 0 {
		remaining = opts.Limit
	}

	s.logger.Info("order sync started",
		zap.String("store", store.ExternalDomain),
		zap.Time("from", from),
		zap.Int("limit", opts.Limit),
	)

	cursor := ""
	runFailed := false
	for {
		page, err := s.gateway.FetchOrders(ctx, commerce.OrderPageRequest{
			First:     s.settings.pageSize(remaining),
			After:     cursor,
			UpdatedAt: from,
		})
		if err != nil {
			result.AddError("", fmt.Sprintf("page %d", result.Pages+1), err)
			runFailed = true
			s.logger.Error("order page fetch failed", zap.Int("page", result.Pages+1), zap.Error(err))
			break
		}
		result.Pages++

		for i := range page.Orders {
			order := &page.Orders[i]
			order.StoreID = store.ID
			created, err := s.orders.Upsert(ctx, order)
			if err != nil {
				result.AddError(order.ShopifyOrderID, order.Name, err)
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
			remaining -= len(page.Orders)
			if remaining <= 0 {
				break
			}
		}
		if !page.HasNextPage {
			break
		}
		cursor = page.EndCursor

		if err := httpx.SleepContext(ctx, s.settings.InterPageDelay); err != nil {
			result.AddError("", "inter-page delay", err)
			runFailed = true
			break
		}
	}

	if !runFailed {
		if err := s.resolver.stores.TouchLastSynced(ctx, store.ID, result.StartedAt); err != nil {
			s.logger.Warn("failed to bump last synced timestamp", zap.Error(err))
		}
	}

	s.logger.Info("order sync finished",
		zap.Int("processed", result.Processed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("pages", result.Pages),
		zap.Int("errors", len(result.Errors)),
	)
	return result.Finish(), nil
}
