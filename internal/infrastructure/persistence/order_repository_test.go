package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

func TestGormOrderRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	store := newTestStore(t, db, commerce.PlatformShopify)

	t.Run("creates order with line items", func(t *testing.T) {
		order := newTestOrder(store.ID, "5479106625723", "#1042")
		created, err := repo.Upsert(ctx, order)
		require.NoError(t, err)
		assert.True(t, created)

		found, err := repo.FindByShopifyOrderID(ctx, store.ID, "5479106625723")
		require.NoError(t, err)
		assert.Equal(t, "#1042", found.Name)
		assert.Equal(t, 1042, found.OrderNumber)
		require.Len(t, found.LineItems, 1)
		assert.Equal(t, "LS-M", found.LineItems[0].SKU)
	})

	t.Run("resync updates in place without changing identity", func(t *testing.T) {
		order := newTestOrder(store.ID, "111222333", "#2001")
		created, err := repo.Upsert(ctx, order)
		require.NoError(t, err)
		require.True(t, created)
		originalID := order.ID

		fresh := newTestOrder(store.ID, "111222333", "#2001")
		fresh.FinancialStatus = "REFUNDED"
		fresh.TotalPrice = decimal.NewFromInt(80)
		fresh.LineItems = []commerce.OrderLineItem{
			{ShopifyLineItemID: "111", Title: "Linen Shirt", SKU: "LS-M", Quantity: 1, Price: decimal.NewFromInt(45)},
			{ShopifyLineItemID: "112", Title: "Linen Trousers", SKU: "LT-M", Quantity: 1, Price: decimal.NewFromInt(35)},
		}

		created, err = repo.Upsert(ctx, fresh)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, originalID, fresh.ID)

		found, err := repo.FindByShopifyOrderID(ctx, store.ID, "111222333")
		require.NoError(t, err)
		assert.Equal(t, originalID, found.ID)
		assert.Equal(t, "REFUNDED", found.FinancialStatus)
		assert.Equal(t, "80", found.TotalPrice.String())
		assert.Len(t, found.LineItems, 2)
	})

	t.Run("resync is idempotent on line item count", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := repo.Upsert(ctx, newTestOrder(store.ID, "999888777", "#3003"))
			require.NoError(t, err)
		}
		found, err := repo.FindByShopifyOrderID(ctx, store.ID, "999888777")
		require.NoError(t, err)
		assert.Len(t, found.LineItems, 1)
	})

	t.Run("rejects order without external id before any write", func(t *testing.T) {
		order := newTestOrder(store.ID, "", "#4004")
		_, err := repo.Upsert(ctx, order)
		assert.ErrorIs(t, err, commerce.ErrValidation)
	})

	t.Run("same external id in another store is a separate order", func(t *testing.T) {
		other := newTestStore(t, db, commerce.PlatformShopify)
		created, err := repo.Upsert(ctx, newTestOrder(other.ID, "5479106625723", "#1"))
		require.NoError(t, err)
		assert.True(t, created)
	})
}

func TestGormOrderRepository_ExistsByShopifyOrderID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	store := newTestStore(t, db, commerce.PlatformShopify)

	exists, err := repo.ExistsByShopifyOrderID(ctx, store.ID, "42")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Upsert(ctx, newTestOrder(store.ID, "42", "#42"))
	require.NoError(t, err)

	exists, err = repo.ExistsByShopifyOrderID(ctx, store.ID, "42")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormOrderRepository_FindByShopifyOrderID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	_, err := repo.FindByShopifyOrderID(context.Background(), uuid.New(), "nope")
	assert.ErrorIs(t, err, commerce.ErrOrderNotFound)
}

func TestGormOrderRepository_CountByStore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	store := newTestStore(t, db, commerce.PlatformShopify)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"1", "2", "3"} {
		order := newTestOrder(store.ID, id, "#"+id)
		order.ProcessedAt = base.AddDate(0, 0, i*10)
		_, err := repo.Upsert(ctx, order)
		require.NoError(t, err)
	}

	count, err := repo.CountByStore(ctx, store.ID, base, base.AddDate(0, 0, 15))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByStore(ctx, store.ID, base, base.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
