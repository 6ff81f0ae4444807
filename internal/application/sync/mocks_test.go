package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// MockStoreRepository is a mock implementation of commerce.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByDomain(ctx context.Context, platform commerce.Platform, externalDomain string) (*commerce.Store, error) {
	args := m.Called(ctx, platform, externalDomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Store), args.Error(1)
}

func (m *MockStoreRepository) UpsertByDomain(ctx context.Context, store *commerce.Store) (*commerce.Store, error) {
	args := m.Called(ctx, store)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Store), args.Error(1)
}

func (m *MockStoreRepository) TouchLastSynced(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of commerce.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByShopifyOrderID(ctx context.Context, storeID uuid.UUID, shopifyOrderID string) (*commerce.Order, error) {
	args := m.Called(ctx, storeID, shopifyOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByShopifyOrderID(ctx context.Context, storeID uuid.UUID, shopifyOrderID string) (bool, error) {
	args := m.Called(ctx, storeID, shopifyOrderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Upsert(ctx context.Context, order *commerce.Order) (bool, error) {
	args := m.Called(ctx, order)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CountByStore(ctx context.Context, storeID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, storeID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockCatalogRepository is a mock implementation of commerce.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindProductByShopifyID(ctx context.Context, storeID uuid.UUID, shopifyProductID string) (*commerce.Product, error) {
	args := m.Called(ctx, storeID, shopifyProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Product), args.Error(1)
}

func (m *MockCatalogRepository) UpsertProduct(ctx context.Context, product *commerce.Product) (bool, error) {
	args := m.Called(ctx, product)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) UpsertCollection(ctx context.Context, collection *commerce.Collection) (bool, error) {
	args := m.Called(ctx, collection)
	return args.Bool(0), args.Error(1)
}

// MockReturnRepository is a mock implementation of commerce.ReturnRepository
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) FindBySwapReturnID(ctx context.Context, storeID uuid.UUID, swapReturnID string) (*commerce.ReturnRecord, error) {
	args := m.Called(ctx, storeID, swapReturnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.ReturnRecord), args.Error(1)
}

func (m *MockReturnRepository) Upsert(ctx context.Context, record *commerce.ReturnRecord) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockReturnRepository) FindUnmatchedBatch(ctx context.Context, limit int, storeID *uuid.UUID) ([]commerce.ReturnRecord, error) {
	args := m.Called(ctx, limit, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commerce.ReturnRecord), args.Error(1)
}

func (m *MockReturnRepository) MarkMatched(ctx context.Context, id uuid.UUID, shopifyOrderID string) error {
	args := m.Called(ctx, id, shopifyOrderID)
	return args.Error(0)
}

func (m *MockReturnRepository) FindUnmatchable(ctx context.Context, limit int, storeID *uuid.UUID) ([]commerce.UnmatchedReturn, error) {
	args := m.Called(ctx, limit, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commerce.UnmatchedReturn), args.Error(1)
}

func (m *MockReturnRepository) CountByStore(ctx context.Context, storeID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, storeID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockShopifyGateway is a mock implementation of commerce.ShopifyGateway
type MockShopifyGateway struct {
	mock.Mock
}

func (m *MockShopifyGateway) FetchOrders(ctx context.Context, req commerce.OrderPageRequest) (*commerce.OrderPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.OrderPage), args.Error(1)
}

func (m *MockShopifyGateway) FetchProducts(ctx context.Context, req commerce.CatalogPageRequest) (*commerce.ProductPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.ProductPage), args.Error(1)
}

func (m *MockShopifyGateway) FetchCollections(ctx context.Context, req commerce.CatalogPageRequest) (*commerce.CollectionPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.CollectionPage), args.Error(1)
}

// MockSwapGateway is a mock implementation of commerce.SwapGateway
type MockSwapGateway struct {
	mock.Mock
}

func (m *MockSwapGateway) FetchReturns(ctx context.Context, req commerce.ReturnPageRequest) (*commerce.ReturnPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.ReturnPage), args.Error(1)
}
