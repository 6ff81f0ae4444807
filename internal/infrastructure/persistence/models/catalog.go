package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	ID               uuid.UUID             `gorm:"type:uuid;primary_key"`
	ShopifyProductID string                `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_store_shopify,priority:2"`
	Title            string                `gorm:"type:varchar(255)"`
	Handle           string                `gorm:"type:varchar(255);index"`
	ProductType      string                `gorm:"type:varchar(100)"`
	Vendor           string                `gorm:"type:varchar(100)"`
	Status           string                `gorm:"type:varchar(20)"`
	StoreID          uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_product_store_shopify,priority:1;index"`
	Variants         []ProductVariantModel `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time             `gorm:"not null"`
	UpdatedAt        time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ProductVariantModel is the persistence model for one product variant.
// The parent's variant set is replaced wholesale on resync.
type ProductVariantModel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key"`
	ProductID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	ShopifyVariantID string           `gorm:"type:varchar(64);not null"`
	Title            string           `gorm:"type:varchar(255)"`
	SKU              string           `gorm:"type:varchar(100);index"`
	Price            decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CompareAtPrice   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	InventoryQty     int              `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// CollectionModel is the persistence model for the Collection entity.
type CollectionModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopifyCollectionID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_collection_store_shopify,priority:2"`
	Title               string    `gorm:"type:varchar(255)"`
	Handle              string    `gorm:"type:varchar(255);index"`
	StoreID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_collection_store_shopify,priority:1;index"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CollectionModel) TableName() string {
	return "collections"
}

// ProductCollectionModel records one product↔collection membership by
// normalized external collection ID. Memberships are fully replaced per
// product resync.
type ProductCollectionModel struct {
	ProductID           uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopifyCollectionID string    `gorm:"type:varchar(64);primary_key"`
}

// TableName returns the table name for GORM
func (ProductCollectionModel) TableName() string {
	return "product_collections"
}

// ToDomain converts the persistence model to a domain Product entity. The
// caller supplies the collection memberships, which live in their own table.
func (m *ProductModel) ToDomain(collectionIDs []string) *commerce.Product {
	product := &commerce.Product{
		ID:               m.ID,
		ShopifyProductID: m.ShopifyProductID,
		Title:            m.Title,
		Handle:           m.Handle,
		ProductType:      m.ProductType,
		Vendor:           m.Vendor,
		Status:           m.Status,
		StoreID:          m.StoreID,
		Variants:         make([]commerce.ProductVariant, 0, len(m.Variants)),
		CollectionIDs:    collectionIDs,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	for _, v := range m.Variants {
		product.Variants = append(product.Variants, commerce.ProductVariant{
			ID:               v.ID,
			ShopifyVariantID: v.ShopifyVariantID,
			Title:            v.Title,
			SKU:              v.SKU,
			Price:            v.Price,
			CompareAtPrice:   v.CompareAtPrice,
			InventoryQty:     v.InventoryQty,
		})
	}
	return product
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *commerce.Product) {
	m.ID = p.ID
	m.ShopifyProductID = p.ShopifyProductID
	m.Title = p.Title
	m.Handle = p.Handle
	m.ProductType = p.ProductType
	m.Vendor = p.Vendor
	m.Status = p.Status
	m.StoreID = p.StoreID
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt

	m.Variants = make([]ProductVariantModel, 0, len(p.Variants))
	for _, v := range p.Variants {
		id := v.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		m.Variants = append(m.Variants, ProductVariantModel{
			ID:               id,
			ProductID:        p.ID,
			ShopifyVariantID: v.ShopifyVariantID,
			Title:            v.Title,
			SKU:              v.SKU,
			Price:            v.Price,
			CompareAtPrice:   v.CompareAtPrice,
			InventoryQty:     v.InventoryQty,
		})
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *commerce.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ToDomain converts the persistence model to a domain Collection entity.
func (m *CollectionModel) ToDomain() *commerce.Collection {
	return &commerce.Collection{
		ID:                  m.ID,
		ShopifyCollectionID: m.ShopifyCollectionID,
		Title:               m.Title,
		Handle:              m.Handle,
		StoreID:             m.StoreID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Collection entity.
func (m *CollectionModel) FromDomain(c *commerce.Collection) {
	m.ID = c.ID
	m.ShopifyCollectionID = c.ShopifyCollectionID
	m.Title = c.Title
	m.Handle = c.Handle
	m.StoreID = c.StoreID
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}
