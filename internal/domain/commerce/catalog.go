package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a storefront catalog product, upserted by its normalized
// external ID. Variants are deleted and recreated per resync of the parent
// product; the product↔collection relation is fully replaced per resync.
type Product struct {
	ID uuid.UUID
	// ShopifyProductID is the normalized external product ID and upsert key.
	ShopifyProductID string
	Title            string
	Handle           string
	ProductType      string
	Vendor           string
	Status           string
	StoreID          uuid.UUID
	Variants         []ProductVariant
	// CollectionIDs holds the normalized external IDs of the collections the
	// product belongs to.
	CollectionIDs []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the product's required identifiers before persistence.
func (p *Product) Validate() error {
	if p.ShopifyProductID == "" {
		return ErrValidation
	}
	if p.StoreID == uuid.Nil {
		return ErrValidation
	}
	return nil
}

// ProductVariant is a purchasable variant of a product. Never partially
// diffed: the parent's variant set is replaced wholesale on resync.
type ProductVariant struct {
	ID uuid.UUID
	// ShopifyVariantID is the normalized external variant ID.
	ShopifyVariantID string
	Title            string
	SKU              string
	Price            decimal.Decimal
	CompareAtPrice   *decimal.Decimal
	InventoryQty     int
}

// Collection is a storefront collection, upserted by normalized external ID.
type Collection struct {
	ID uuid.UUID
	// ShopifyCollectionID is the normalized external collection ID.
	ShopifyCollectionID string
	Title               string
	Handle              string
	StoreID             uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Validate checks the collection's required identifiers before persistence.
func (c *Collection) Validate() error {
	if c.ShopifyCollectionID == "" {
		return ErrValidation
	}
	if c.StoreID == uuid.Nil {
		return ErrValidation
	}
	return nil
}

// CatalogRepository persists synced catalog entities.
type CatalogRepository interface {
	// FindProductByShopifyID finds a product by canonical external ID,
	// variants included. Returns ErrProductNotFound when absent.
	FindProductByShopifyID(ctx context.Context, storeID uuid.UUID, shopifyProductID string) (*Product, error)

	// UpsertProduct creates or updates a product by canonical external ID,
	// recreating its variant set and replacing its collection memberships.
	// Returns true when a new row was created.
	UpsertProduct(ctx context.Context, product *Product) (created bool, err error)

	// UpsertCollection creates or updates a collection by canonical external
	// ID. Returns true when a new row was created.
	UpsertCollection(ctx context.Context, collection *Collection) (created bool, err error)
}
