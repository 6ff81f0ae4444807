package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
	"github.com/blakespencer/debute-backend/internal/infrastructure/persistence/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.StoreModel{},
		&models.OrderModel{},
		&models.OrderLineItemModel{},
		&models.ProductModel{},
		&models.ProductVariantModel{},
		&models.CollectionModel{},
		&models.ProductCollectionModel{},
		&models.ReturnModel{},
		&models.ReturnProductModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestStore(t *testing.T, db *gorm.DB, platform commerce.Platform) *commerce.Store {
	t.Helper()
	store := commerce.NewStore(platform, uuid.NewString()+".example.com", "token")
	persisted, err := NewGormStoreRepository(db).UpsertByDomain(context.Background(), store)
	require.NoError(t, err)
	return persisted
}

func newTestOrder(storeID uuid.UUID, shopifyOrderID, name string) *commerce.Order {
	return &commerce.Order{
		ShopifyOrderID:    shopifyOrderID,
		Name:              name,
		OrderNumber:       commerce.ExtractOrderNumber(name),
		Email:             "buyer@example.com",
		FinancialStatus:   "PAID",
		FulfillmentStatus: "FULFILLED",
		Currency:          "EUR",
		TotalPrice:        decimal.NewFromInt(100),
		SubtotalPrice:     decimal.NewFromInt(90),
		TotalTax:          decimal.NewFromInt(10),
		ProcessedAt:       time.Now().UTC().Truncate(time.Second),
		StoreID:           storeID,
		LineItems: []commerce.OrderLineItem{
			{ShopifyLineItemID: "111", VariantID: "222", Title: "Linen Shirt", SKU: "LS-M", Quantity: 2, Price: decimal.NewFromInt(45)},
		},
	}
}

func newTestReturn(storeID uuid.UUID, swapReturnID, orderName string) *commerce.ReturnRecord {
	return &commerce.ReturnRecord{
		SwapReturnID:     swapReturnID,
		OrderName:        orderName,
		RMA:              "RMA-" + swapReturnID,
		SwapOrderID:      "ord_" + swapReturnID,
		TypeString:       "Refund",
		Status:           "Closed",
		ReturnStatus:     "Received",
		DeliveryStatus:   "Delivered",
		Currency:         "EUR",
		TotalRefundValue: decimal.NewFromInt(45),
		DateCreated:      time.Now().UTC().Truncate(time.Second),
		StoreID:          storeID,
		Products: []commerce.ReturnProduct{
			{ShopifyProductID: "900", ProductName: "Linen Shirt", SKU: "LS-M", ItemCount: 1, Cost: decimal.NewFromInt(45), ReturnType: "Refund", Reasons: []string{"Too small"}},
		},
	}
}
