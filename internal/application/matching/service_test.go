package matching

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

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

func newMatchingFixture(t *testing.T) (*Service, *MockStoreRepository, *MockOrderRepository, *MockReturnRepository) {
	t.Helper()
	stores := new(MockStoreRepository)
	orders := new(MockOrderRepository)
	returns := new(MockReturnRepository)
	return NewService(stores, orders, returns, zap.NewNop()), stores, orders, returns
}

func unmatchedRecord(swapReturnID, swapOrderID string) commerce.ReturnRecord {
	return commerce.ReturnRecord{
		ID:           uuid.New(),
		SwapReturnID: swapReturnID,
		SwapOrderID:  swapOrderID,
		StoreID:      uuid.New(),
	}
}

func TestMatchAll_Transitions(t *testing.T) {
	service, _, orders, returns := newMatchingFixture(t)

	matchable := unmatchedRecord("swp_a", "gid://shopify/Order/100")
	orphan := unmatchedRecord("swp_b", "999")
	noRef := unmatchedRecord("swp_c", "")

	returns.On("FindUnmatchedBatch", mock.Anything, 100, (*uuid.UUID)(nil)).
		Return([]commerce.ReturnRecord{matchable, orphan, noRef}, nil)
	orders.On("ExistsByShopifyOrderID", mock.Anything, matchable.StoreID, "100").Return(true, nil)
	orders.On("ExistsByShopifyOrderID", mock.Anything, orphan.StoreID, "999").Return(false, nil)
	returns.On("MarkMatched", mock.Anything, matchable.ID, "100").Return(nil)

	result, err := service.MatchAll(context.Background(), MatchOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 1, result.SuccessfulMatches)
	assert.Equal(t, 1, result.NotFound)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.AlreadyMatched)
	assert.Empty(t, result.Errors)
	assert.False(t, result.DryRun)
	returns.AssertCalled(t, "MarkMatched", mock.Anything, matchable.ID, "100")
}

func TestMatchAll_DryRunDoesNotWrite(t *testing.T) {
	service, _, orders, returns := newMatchingFixture(t)

	matchable := unmatchedRecord("swp_a", "100")
	returns.On("FindUnmatchedBatch", mock.Anything, 100, (*uuid.UUID)(nil)).
		Return([]commerce.ReturnRecord{matchable}, nil)
	orders.On("ExistsByShopifyOrderID", mock.Anything, matchable.StoreID, "100").Return(true, nil)

	result, err := service.MatchAll(context.Background(), MatchOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessfulMatches)
	assert.True(t, result.DryRun)
	returns.AssertNotCalled(t, "MarkMatched", mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchAll_PerRecordErrorsAccumulate(t *testing.T) {
	service, _, orders, returns := newMatchingFixture(t)

	failing := unmatchedRecord("swp_bad", "100")
	fine := unmatchedRecord("swp_ok", "200")
	returns.On("FindUnmatchedBatch", mock.Anything, 100, (*uuid.UUID)(nil)).
		Return([]commerce.ReturnRecord{failing, fine}, nil)
	orders.On("ExistsByShopifyOrderID", mock.Anything, failing.StoreID, "100").
		Return(false, commerce.ErrTransport)
	orders.On("ExistsByShopifyOrderID", mock.Anything, fine.StoreID, "200").Return(true, nil)
	returns.On("MarkMatched", mock.Anything, fine.ID, "200").Return(nil)

	result, err := service.MatchAll(context.Background(), MatchOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 1, result.SuccessfulMatches)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "swp_bad", result.Errors[0].SwapReturnID)
}

func TestMatchAll_AlreadyMatchedRace(t *testing.T) {
	service, _, _, returns := newMatchingFixture(t)

	raced := unmatchedRecord("swp_raced", "100")
	raced.IsMatched = true
	returns.On("FindUnmatchedBatch", mock.Anything, 100, (*uuid.UUID)(nil)).
		Return([]commerce.ReturnRecord{raced}, nil)

	result, err := service.MatchAll(context.Background(), MatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlreadyMatched)
	assert.Equal(t, 0, result.SuccessfulMatches)
}

func TestMatchAll_StoreScoping(t *testing.T) {
	service, stores, _, returns := newMatchingFixture(t)

	store := &commerce.Store{ID: uuid.New(), Platform: commerce.PlatformShopify, ExternalDomain: "example.myshopify.com"}
	stores.On("FindByDomain", mock.Anything, commerce.PlatformShopify, "example.myshopify.com").Return(store, nil)
	returns.On("FindUnmatchedBatch", mock.Anything, 25, &store.ID).Return([]commerce.ReturnRecord{}, nil)

	result, err := service.MatchAll(context.Background(), MatchOptions{BatchSize: 25, StoreDomain: "example.myshopify.com"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalProcessed)
	returns.AssertExpectations(t)
}

func TestMatchAll_UnknownStore(t *testing.T) {
	service, stores, _, _ := newMatchingFixture(t)

	stores.On("FindByDomain", mock.Anything, commerce.PlatformShopify, "ghost.myshopify.com").
		Return(nil, commerce.ErrStoreNotFound)

	_, err := service.MatchAll(context.Background(), MatchOptions{StoreDomain: "ghost.myshopify.com"})
	assert.ErrorIs(t, err, commerce.ErrStoreNotFound)
}

func TestFindUnmatched(t *testing.T) {
	service, _, _, returns := newMatchingFixture(t)

	expected := []commerce.UnmatchedReturn{
		{SwapReturnID: "swp_a", ShopifyOrderID: "999", OrderName: "#1042", RMA: "RMA-1"},
	}
	returns.On("FindUnmatchable", mock.Anything, 10, (*uuid.UUID)(nil)).Return(expected, nil)

	listed, err := service.FindUnmatched(context.Background(), 10, "")
	require.NoError(t, err)
	assert.Equal(t, expected, listed)
}
