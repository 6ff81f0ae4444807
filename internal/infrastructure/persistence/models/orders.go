package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// OrderModel is the persistence model for the Order entity. The normalized
// Shopify order ID is the upsert key within a store.
type OrderModel struct {
	ID                uuid.UUID            `gorm:"type:uuid;primary_key"`
	ShopifyOrderID    string               `gorm:"type:varchar(64);not null;uniqueIndex:idx_order_store_shopify,priority:2"`
	Name              string               `gorm:"type:varchar(64);not null;index"`
	OrderNumber       int                  `gorm:"not null;default:0;index"`
	Email             string               `gorm:"type:varchar(255)"`
	FinancialStatus   string               `gorm:"type:varchar(50)"`
	FulfillmentStatus string               `gorm:"type:varchar(50)"`
	Currency          string               `gorm:"type:varchar(10)"`
	TotalPrice        decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	SubtotalPrice     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalTax          decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscounts    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ProcessedAt       time.Time            `gorm:"index"`
	CancelledAt       *time.Time
	StoreID           uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_order_store_shopify,priority:1;index"`
	LineItems         []OrderLineItemModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time            `gorm:"not null"`
	UpdatedAt         time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineItemModel is the persistence model for one order line item.
// Line items are cascade-replaced on resync.
type OrderLineItemModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopifyLineItemID string          `gorm:"type:varchar(64);not null"`
	VariantID         string          `gorm:"type:varchar(64)"`
	Title             string          `gorm:"type:varchar(255)"`
	SKU               string          `gorm:"type:varchar(100);index"`
	Quantity          int             `gorm:"not null;default:0"`
	Price             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderLineItemModel) TableName() string {
	return "order_line_items"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *commerce.Order {
	order := &commerce.Order{
		ID:                m.ID,
		ShopifyOrderID:    m.ShopifyOrderID,
		Name:              m.Name,
		OrderNumber:       m.OrderNumber,
		Email:             m.Email,
		FinancialStatus:   m.FinancialStatus,
		FulfillmentStatus: m.FulfillmentStatus,
		Currency:          m.Currency,
		TotalPrice:        m.TotalPrice,
		SubtotalPrice:     m.SubtotalPrice,
		TotalTax:          m.TotalTax,
		TotalDiscounts:    m.TotalDiscounts,
		ProcessedAt:       m.ProcessedAt,
		CancelledAt:       m.CancelledAt,
		StoreID:           m.StoreID,
		LineItems:         make([]commerce.OrderLineItem, 0, len(m.LineItems)),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for _, item := range m.LineItems {
		order.LineItems = append(order.LineItems, commerce.OrderLineItem{
			ID:                item.ID,
			ShopifyLineItemID: item.ShopifyLineItemID,
			VariantID:         item.VariantID,
			Title:             item.Title,
			SKU:               item.SKU,
			Quantity:          item.Quantity,
			Price:             item.Price,
		})
	}
	return order
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *commerce.Order) {
	m.ID = o.ID
	m.ShopifyOrderID = o.ShopifyOrderID
	m.Name = o.Name
	m.OrderNumber = o.OrderNumber
	m.Email = o.Email
	m.FinancialStatus = o.FinancialStatus
	m.FulfillmentStatus = o.FulfillmentStatus
	m.Currency = o.Currency
	m.TotalPrice = o.TotalPrice
	m.SubtotalPrice = o.SubtotalPrice
	m.TotalTax = o.TotalTax
	m.TotalDiscounts = o.TotalDiscounts
	m.ProcessedAt = o.ProcessedAt
	m.CancelledAt = o.CancelledAt
	m.StoreID = o.StoreID
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt

	m.LineItems = make([]OrderLineItemModel, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		id := item.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		m.LineItems = append(m.LineItems, OrderLineItemModel{
			ID:                id,
			OrderID:           o.ID,
			ShopifyLineItemID: item.ShopifyLineItemID,
			VariantID:         item.VariantID,
			Title:             item.Title,
			SKU:               item.SKU,
			Quantity:          item.Quantity,
			Price:             item.Price,
		})
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *commerce.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
