package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// ReturnModel is the persistence model for the ReturnRecord entity. The
// canonical Swap return ID is the upsert key within a store.
type ReturnModel struct {
	ID                     uuid.UUID            `gorm:"type:uuid;primary_key"`
	SwapReturnID           string               `gorm:"type:varchar(64);not null;uniqueIndex:idx_return_store_swap,priority:2"`
	OrderName              string               `gorm:"type:varchar(64);index"`
	RMA                    string               `gorm:"type:varchar(64);index"`
	SwapOrderID            string               `gorm:"type:varchar(64);index"`
	ShopifyOrderID         *string              `gorm:"type:varchar(64);index"`
	IsMatched              bool                 `gorm:"not null;default:false;index"`
	TypeString             string               `gorm:"type:varchar(50);column:type"`
	Status                 string               `gorm:"type:varchar(50)"`
	ReturnStatus           string               `gorm:"type:varchar(50)"`
	DeliveryStatus         string               `gorm:"type:varchar(50)"`
	Currency               string               `gorm:"type:varchar(10)"`
	TotalRefundValue       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCreditValue       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAdditionalPayment decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	DateCreated            time.Time            `gorm:"index"`
	SubmittedAt            *time.Time
	StoreID                uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_return_store_swap,priority:1;index"`
	Products               []ReturnProductModel `gorm:"foreignKey:ReturnID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time            `gorm:"not null"`
	UpdatedAt              time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnModel) TableName() string {
	return "returns"
}

// ReturnProductModel is the persistence model for one returned item. Reasons
// are stored as a JSON array column.
type ReturnProductModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopifyProductID string          `gorm:"type:varchar(64)"`
	ProductName      string          `gorm:"type:varchar(255)"`
	SKU              string          `gorm:"type:varchar(100);index"`
	ItemCount        int             `gorm:"not null;default:0"`
	Cost             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnType       string          `gorm:"type:varchar(50)"`
	ReasonsJSON      string          `gorm:"type:text;column:reasons"`
}

// TableName returns the table name for GORM
func (ReturnProductModel) TableName() string {
	return "return_products"
}

// ToDomain converts the persistence model to a domain ReturnRecord entity.
func (m *ReturnModel) ToDomain() *commerce.ReturnRecord {
	record := &commerce.ReturnRecord{
		ID:                     m.ID,
		SwapReturnID:           m.SwapReturnID,
		OrderName:              m.OrderName,
		RMA:                    m.RMA,
		SwapOrderID:            m.SwapOrderID,
		ShopifyOrderID:         m.ShopifyOrderID,
		IsMatched:              m.IsMatched,
		TypeString:             m.TypeString,
		Status:                 m.Status,
		ReturnStatus:           m.ReturnStatus,
		DeliveryStatus:         m.DeliveryStatus,
		Currency:               m.Currency,
		TotalRefundValue:       m.TotalRefundValue,
		TotalCreditValue:       m.TotalCreditValue,
		TotalAdditionalPayment: m.TotalAdditionalPayment,
		DateCreated:            m.DateCreated,
		SubmittedAt:            m.SubmittedAt,
		StoreID:                m.StoreID,
		Products:               make([]commerce.ReturnProduct, 0, len(m.Products)),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	for _, p := range m.Products {
		product := commerce.ReturnProduct{
			ID:               p.ID,
			ShopifyProductID: p.ShopifyProductID,
			ProductName:      p.ProductName,
			SKU:              p.SKU,
			ItemCount:        p.ItemCount,
			Cost:             p.Cost,
			ReturnType:       p.ReturnType,
			Reasons:          make([]string, 0),
		}
		if p.ReasonsJSON != "" {
			var reasons []string
			if err := json.Unmarshal([]byte(p.ReasonsJSON), &reasons); err == nil {
				product.Reasons = reasons
			}
		}
		record.Products = append(record.Products, product)
	}
	return record
}

// FromDomain populates the persistence model from a domain ReturnRecord entity.
func (m *ReturnModel) FromDomain(r *commerce.ReturnRecord) {
	m.ID = r.ID
	m.SwapReturnID = r.SwapReturnID
	m.OrderName = r.OrderName
	m.RMA = r.RMA
	m.SwapOrderID = r.SwapOrderID
	m.ShopifyOrderID = r.ShopifyOrderID
	m.IsMatched = r.IsMatched
	m.TypeString = r.TypeString
	m.Status = r.Status
	m.ReturnStatus = r.ReturnStatus
	m.DeliveryStatus = r.DeliveryStatus
	m.Currency = r.Currency
	m.TotalRefundValue = r.TotalRefundValue
	m.TotalCreditValue = r.TotalCreditValue
	m.TotalAdditionalPayment = r.TotalAdditionalPayment
	m.DateCreated = r.DateCreated
	m.SubmittedAt = r.SubmittedAt
	m.StoreID = r.StoreID
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt

	m.Products = make([]ReturnProductModel, 0, len(r.Products))
	for _, p := range r.Products {
		id := p.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		model := ReturnProductModel{
			ID:               id,
			ReturnID:         r.ID,
			ShopifyProductID: p.ShopifyProductID,
			ProductName:      p.ProductName,
			SKU:              p.SKU,
			ItemCount:        p.ItemCount,
			Cost:             p.Cost,
			ReturnType:       p.ReturnType,
		}
		if len(p.Reasons) > 0 {
			if jsonBytes, err := json.Marshal(p.Reasons); err == nil {
				model.ReasonsJSON = string(jsonBytes)
			}
		} else {
			model.ReasonsJSON = "[]"
		}
		m.Products = append(m.Products, model)
	}
}

// ReturnModelFromDomain creates a new persistence model from a domain ReturnRecord entity.
func ReturnModelFromDomain(r *commerce.ReturnRecord) *ReturnModel {
	m := &ReturnModel{}
	m.FromDomain(r)
	return m
}
