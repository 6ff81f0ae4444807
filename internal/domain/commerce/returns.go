package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnRecord is a return synced from the Swap platform. The canonical
// external return ID is the upsert key. SwapOrderID is Swap's own reference
// to the originating order and is NOT validated against the local order
// table at sync time; the matching engine performs that reconciliation.
//
// Invariant: IsMatched == true implies ShopifyOrderID is non-nil and
// referenced an order confirmed present in the local store at matching time.
type ReturnRecord struct {
	ID uuid.UUID
	// SwapReturnID is the canonical external return ID and the upsert key.
	SwapReturnID string
	// OrderName is the human-readable name of the originating order.
	OrderName string
	// RMA is the return merchandise authorization reference.
	RMA string
	// SwapOrderID is the raw foreign order reference as reported by Swap.
	SwapOrderID string
	// ShopifyOrderID is the resolved local order identifier, populated by the
	// return sync when the order is already known and/or later by the
	// matching engine. Nil until resolved.
	ShopifyOrderID *string
	// IsMatched is set only by the matching engine after confirming the
	// referenced order exists locally.
	IsMatched              bool
	TypeString             string
	Status                 string
	ReturnStatus           string
	DeliveryStatus         string
	Currency               string
	TotalRefundValue       decimal.Decimal
	TotalCreditValue       decimal.Decimal
	TotalAdditionalPayment decimal.Decimal
	DateCreated            time.Time
	SubmittedAt            *time.Time
	StoreID                uuid.UUID
	Products               []ReturnProduct
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Validate checks the return's required identifiers before persistence.
func (r *ReturnRecord) Validate() error {
	if r.SwapReturnID == "" {
		return ErrValidation
	}
	if r.StoreID == uuid.Nil {
		return ErrValidation
	}
	return nil
}

// ApplyResync replaces the denormalized fields from a fresh platform record
// while preserving local identity and the reconciliation state. A resync
// never clears IsMatched or a previously resolved ShopifyOrderID, and once a
// return is matched the verified identifier is pinned against later platform
// claims.
func (r *ReturnRecord) ApplyResync(fresh *ReturnRecord) {
	r.OrderName = fresh.OrderName
	r.RMA = fresh.RMA
	r.SwapOrderID = fresh.SwapOrderID
	r.TypeString = fresh.TypeString
	r.Status = fresh.Status
	r.ReturnStatus = fresh.ReturnStatus
	r.DeliveryStatus = fresh.DeliveryStatus
	r.Currency = fresh.Currency
	r.TotalRefundValue = fresh.TotalRefundValue
	r.TotalCreditValue = fresh.TotalCreditValue
	r.TotalAdditionalPayment = fresh.TotalAdditionalPayment
	r.DateCreated = fresh.DateCreated
	r.SubmittedAt = fresh.SubmittedAt
	r.Products = fresh.Products
	if fresh.ShopifyOrderID != nil && !r.IsMatched {
		r.ShopifyOrderID = fresh.ShopifyOrderID
	}
	r.UpdatedAt = time.Now()
}

// ReturnProduct is a returned item belonging to one ReturnRecord.
// Cascade-replaced on resync together with its reasons.
type ReturnProduct struct {
	ID uuid.UUID
	// ShopifyProductID is the normalized external product ID, when known.
	ShopifyProductID string
	ProductName      string
	SKU              string
	ItemCount        int
	Cost             decimal.Decimal
	ReturnType       string
	// Reasons holds the shopper-supplied reason strings for this item.
	Reasons []string
}

// UnmatchedReturn is the operator-visibility projection of a return whose
// foreign order reference has no corresponding local order.
type UnmatchedReturn struct {
	SwapReturnID string `json:"swapReturnId"`
	// ShopifyOrderID carries the resolved order identifier or, when none was
	// ever resolved, the raw platform reference.
	ShopifyOrderID string `json:"shopifyOrderId"`
	OrderName      string `json:"orderName"`
	RMA            string `json:"rma"`
}

// ReturnRepository persists synced returns and drives the reconciliation
// reads/writes used by the matching engine.
type ReturnRepository interface {
	// FindBySwapReturnID finds a return by canonical external ID, products
	// included. Returns ErrReturnNotFound when absent.
	FindBySwapReturnID(ctx context.Context, storeID uuid.UUID, swapReturnID string) (*ReturnRecord, error)

	// Upsert creates the return or updates it in place by canonical external
	// ID, cascade-replacing its products. Returns true when a new row was
	// created.
	Upsert(ctx context.Context, record *ReturnRecord) (created bool, err error)

	// FindUnmatchedBatch fetches up to limit returns with IsMatched == false
	// and a non-empty foreign order reference, optionally scoped to a store.
	FindUnmatchedBatch(ctx context.Context, limit int, storeID *uuid.UUID) ([]ReturnRecord, error)

	// MarkMatched sets IsMatched and the resolved order identifier.
	MarkMatched(ctx context.Context, id uuid.UUID, shopifyOrderID string) error

	// FindUnmatchable lists returns carrying a foreign order reference whose
	// order is confirmed absent from the local order table. Read-only.
	FindUnmatchable(ctx context.Context, limit int, storeID *uuid.UUID) ([]UnmatchedReturn, error)

	// CountByStore counts returns for a store created within [from, to).
	CountByStore(ctx context.Context, storeID uuid.UUID, from, to time.Time) (int64, error)
}
