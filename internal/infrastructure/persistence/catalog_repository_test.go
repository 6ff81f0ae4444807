package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

func newTestProduct(storeID uuid.UUID, shopifyProductID string) *commerce.Product {
	compareAt := decimal.NewFromInt(70)
	return &commerce.Product{
		ShopifyProductID: shopifyProductID,
		Title:            "Linen Shirt",
		Handle:           "linen-shirt",
		ProductType:      "Shirts",
		Vendor:           "Debute",
		Status:           "ACTIVE",
		StoreID:          storeID,
		Variants: []commerce.ProductVariant{
			{ShopifyVariantID: "901", Title: "M", SKU: "LS-M", Price: decimal.NewFromInt(55), CompareAtPrice: &compareAt, InventoryQty: 12},
			{ShopifyVariantID: "902", Title: "L", SKU: "LS-L", Price: decimal.NewFromInt(55), InventoryQty: 3},
		},
		CollectionIDs: []string{"77", "78"},
	}
}

func TestGormCatalogRepository_UpsertProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCatalogRepository(db)
	ctx := context.Background()
	store := newTestStore(t, db, commerce.PlatformShopify)

	t.Run("creates product with variants and memberships", func(t *testing.T) {
		created, err := repo.UpsertProduct(ctx, newTestProduct(store.ID, "900"))
		require.NoError(t, err)
		assert.True(t, created)

		found, err := repo.FindProductByShopifyID(ctx, store.ID, "900")
		require.NoError(t, err)
		assert.Len(t, found.Variants, 2)
		assert.ElementsMatch(t, []string{"77", "78"}, found.CollectionIDs)
	})

	t.Run("resync recreates variant set and replaces memberships", func(t *testing.T) {
		product := newTestProduct(store.ID, "910")
		_, err := repo.UpsertProduct(ctx, product)
		require.NoError(t, err)
		originalID := product.ID

		fresh := newTestProduct(store.ID, "910")
		fresh.Variants = fresh.Variants[:1]
		fresh.Variants[0].InventoryQty = 1
		fresh.CollectionIDs = []string{"79"}

		created, err := repo.UpsertProduct(ctx, fresh)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, originalID, fresh.ID)

		found, err := repo.FindProductByShopifyID(ctx, store.ID, "910")
		require.NoError(t, err)
		require.Len(t, found.Variants, 1)
		assert.Equal(t, 1, found.Variants[0].InventoryQty)
		assert.Equal(t, []string{"79"}, found.CollectionIDs)
	})

	t.Run("rejects product without external id", func(t *testing.T) {
		_, err := repo.UpsertProduct(ctx, newTestProduct(store.ID, ""))
		assert.ErrorIs(t, err, commerce.ErrValidation)
	})
}

func TestGormCatalogRepository_FindProductByShopifyID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCatalogRepository(db)
	store := newTestStore(t, db, commerce.PlatformShopify)

	_, err := repo.FindProductByShopifyID(context.Background(), store.ID, "missing")
	assert.ErrorIs(t, err, commerce.ErrProductNotFound)
}

func TestGormCatalogRepository_UpsertCollection(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCatalogRepository(db)
	ctx := context.Background()
	store := newTestStore(t, db, commerce.PlatformShopify)

	collection := &commerce.Collection{
		ShopifyCollectionID: "77",
		Title:               "Summer",
		Handle:              "summer",
		StoreID:             store.ID,
	}

	created, err := repo.UpsertCollection(ctx, collection)
	require.NoError(t, err)
	assert.True(t, created)
	originalID := collection.ID

	fresh := &commerce.Collection{
		ShopifyCollectionID: "77",
		Title:               "Summer 2026",
		Handle:              "summer",
		StoreID:             store.ID,
	}
	created, err = repo.UpsertCollection(ctx, fresh)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, originalID, fresh.ID)
}
