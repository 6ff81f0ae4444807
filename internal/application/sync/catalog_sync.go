package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
	"github.com/blakespencer/debute-backend/internal/infrastructure/httpx"
)

// CatalogSyncService pulls storefront collections and products. Collections
// sync first so product membership rows reference known collection IDs.
type CatalogSyncService struct {
	resolver storeResolver
	catalog  commerce.CatalogRepository
	gateway  commerce.ShopifyGateway
	settings Settings
	logger   *zap.Logger
}

// NewCatalogSyncService creates a new CatalogSyncService for the configured
// storefront account.
func NewCatalogSyncService(
	stores commerce.StoreRepository,
	catalog commerce.CatalogRepository,
	gateway commerce.ShopifyGateway,
	storeDomain, accessToken string,
	settings Settings,
	logger *zap.Logger,
) *CatalogSyncService {
	return &CatalogSyncService{
		resolver: storeResolver{
			stores:   stores,
			platform: commerce.PlatformShopify,
			domain:   storeDomain,
			token:    accessToken,
		},
		catalog:  catalog,
		gateway:  gateway,
		settings: settings.withDefaults(),
		logger:   logger.Named("catalog_sync"),
	}
}

// Sync runs one catalog sync pass: all collection pages, then all product
// pages. The record limit spans both phases.
func (s *CatalogSyncService) Sync(ctx context.Context, opts SyncOptions) (*commerce.SyncResult, error) {
	store, err := s.resolver.resolve(ctx, opts.StoreDomain)
	if err != nil {
		return nil, err
	}

	result := commerce.NewSyncResult()
	remaining := -1
	if opts.Limit > 0 {
		remaining = opts.Limit
	}

	s.logger.Info("catalog sync started",
		zap.String("store", store.ExternalDomain),
		zap.Int("limit", opts.Limit),
	)

	runFailed := s.syncCollections(ctx, store, result, &remaining)
	if !runFailed && remaining != 0 {
		runFailed = s.syncProducts(ctx, store, result, &remaining)
	}

	if !runFailed {
		if err := s.resolver.stores.TouchLastSynced(ctx, store.ID, result.StartedAt); err != nil {
			s.logger.Warn("failed to bump last synced timestamp", zap.Error(err))
		}
	}

	s.logger.Info("catalog sync finished",
		zap.Int("processed", result.Processed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("pages", result.Pages),
		zap.Int("errors", len(result.Errors)),
	)
	return result.Finish(), nil
}

// syncCollections pages through collections. Reports true on a run-level
// failure.
func (s *CatalogSyncService) syncCollections(ctx context.Context, store *commerce.Store, result *commerce.SyncResult, remaining *int) bool {
	cursor := ""
	for {
		page, err := s.gateway.FetchCollections(ctx, commerce.CatalogPageRequest{
			First: s.settings.pageSize(*remaining),
			After: cursor,
		})
		if err != nil {
			result.AddError("", fmt.Sprintf("collections page %d", result.Pages+1), err)
			s.logger.Error("collection page fetch failed", zap.Int("page", result.Pages+1), zap.Error(err))
			return true
		}
		result.Pages++

		for i := range page.Collections {
			collection := &page.Collections[i]
			collection.StoreID = store.ID
			created, err := s.catalog.UpsertCollection(ctx, collection)
			if err != nil {
				result.AddError(collection.ShopifyCollectionID, collection.Title, err)
				continue
			}
			result.Processed++
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		if *remaining >= 0 {
			*remaining -= len(page.Collections)
			if *remaining <= 0 {
				// Clamp so an over-full page cannot flip the budget into the
				// unbounded sentinel for the product phase.
				*remaining = 0
				return false
			}
		}
		if !page.HasNextPage {
			return false
		}
		cursor = page.EndCursor

		if err := httpx.SleepContext(ctx, s.settings.InterPageDelay); err != nil {
			result.AddError("", "inter-page delay", err)
			return true
		}
	}
}

// syncProducts pages through products with their variants and memberships.
// Reports true on a run-level failure.
func (s *CatalogSyncService) syncProducts(ctx context.Context, store *commerce.Store, result *commerce.SyncResult, remaining *int) bool {
	cursor := ""
	for {
		page, err := s.gateway.FetchProducts(ctx, commerce.CatalogPageRequest{
			First: s.settings.pageSize(*remaining),
			After: cursor,
		})
		if err != nil {
			result.AddError("", fmt.Sprintf("products page %d", result.Pages+1), err)
			s.logger.Error("product page fetch failed", zap.Int("page", result.Pages+1), zap.Error(err))
			return true
		}
		result.Pages++

		for i := range page.Products {
			product := &page.Products[i]
			product.StoreID = store.ID
			created, err := s.catalog.UpsertProduct(ctx, product)
			if err != nil {
				result.AddError(product.ShopifyProductID, product.Title, err)
				continue
			}
			result.Processed++
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		if *remaining >= 0 {
			*remaining -= len(page.Products)
			if *remaining <= 0 {
				*remaining = 0
				return false
			}
		}
		if !page.HasNextPage {
			return false
		}
		cursor = page.EndCursor

		if err := httpx.SleepContext(ctx, s.settings.InterPageDelay); err != nil {
			result.AddError("", "inter-page delay", err)
			return true
		}
	}
}
