package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a storefront order synced from Shopify. The canonical external
// order ID (normalized, never the raw gid) is the upsert key: resyncing the
// same external ID updates the row in place without changing identity.
type Order struct {
	ID uuid.UUID
	// ShopifyOrderID is the normalized external order ID and the upsert key.
	ShopifyOrderID string
	// Name is the human-readable order name, e.g. "#1042" or "EXP1042".
	Name string
	// OrderNumber is derived from Name via ExtractOrderNumber. Best-effort.
	OrderNumber       int
	Email             string
	FinancialStatus   string
	FulfillmentStatus string
	Currency          string
	TotalPrice        decimal.Decimal
	SubtotalPrice     decimal.Decimal
	TotalTax          decimal.Decimal
	TotalDiscounts    decimal.Decimal
	ProcessedAt       time.Time
	CancelledAt       *time.Time
	StoreID           uuid.UUID
	LineItems         []OrderLineItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks the order's required identifiers before persistence.
func (o *Order) Validate() error {
	if o.ShopifyOrderID == "" {
		return ErrValidation
	}
	if o.StoreID == uuid.Nil {
		return ErrValidation
	}
	return nil
}

// ApplyResync replaces the denormalized status/financial fields from a fresh
// platform record while keeping local identity.
func (o *Order) ApplyResync(fresh *Order) {
	o.Name = fresh.Name
	o.OrderNumber = fresh.OrderNumber
	o.Email = fresh.Email
	o.FinancialStatus = fresh.FinancialStatus
	o.FulfillmentStatus = fresh.FulfillmentStatus
	o.Currency = fresh.Currency
	o.TotalPrice = fresh.TotalPrice
	o.SubtotalPrice = fresh.SubtotalPrice
	o.TotalTax = fresh.TotalTax
	o.TotalDiscounts = fresh.TotalDiscounts
	o.ProcessedAt = fresh.ProcessedAt
	o.CancelledAt = fresh.CancelledAt
	o.LineItems = fresh.LineItems
	o.UpdatedAt = time.Now()
}

// OrderLineItem belongs to exactly one order. Line items are cascade-replaced
// on resync: the full set for an order is deleted and recreated together,
// never partially patched.
type OrderLineItem struct {
	ID uuid.UUID
	// ShopifyLineItemID is the normalized external line item ID.
	ShopifyLineItemID string
	// VariantID is the normalized external variant ID; empty when the line
	// item no longer references a live variant.
	VariantID string
	Title     string
	SKU       string
	Quantity  int
	Price     decimal.Decimal
}

// OrderRepository persists synced orders and their line items.
type OrderRepository interface {
	// FindByShopifyOrderID finds an order by its canonical external ID,
	// line items included. Returns ErrOrderNotFound when absent.
	FindByShopifyOrderID(ctx context.Context, storeID uuid.UUID, shopifyOrderID string) (*Order, error)

	// ExistsByShopifyOrderID reports whether the canonical external ID is
	// already present for the store.
	ExistsByShopifyOrderID(ctx context.Context, storeID uuid.UUID, shopifyOrderID string) (bool, error)

	// Upsert creates the order or updates it in place by canonical external
	// ID, cascade-replacing its line items. Returns true when a new row was
	// created. Validation failures surface as ErrValidation before any write.
	Upsert(ctx context.Context, order *Order) (created bool, err error)

	// CountByStore counts orders for a store processed within [from, to).
	CountByStore(ctx context.Context, storeID uuid.UUID, from, to time.Time) (int64, error)
}
