package commerce

import (
	"context"
	"time"
)

// ---------------------------------------------------------------------------
// Platform Gateway Ports
// ---------------------------------------------------------------------------
// Ports & Adapters: the ports live in the domain layer; the retrying HTTP
// clients in internal/infrastructure/{shopify,swap} implement them.

// OrderPage is one cursor page of storefront orders.
type OrderPage struct {
	Orders      []Order
	HasNextPage bool
	EndCursor   string
}

// ProductPage is one cursor page of storefront products with their variants
// and collection memberships.
type ProductPage struct {
	Products    []Product
	HasNextPage bool
	EndCursor   string
}

// CollectionPage is one cursor page of storefront collections.
type CollectionPage struct {
	Collections []Collection
	HasNextPage bool
	EndCursor   string
}

// OrderPageRequest describes one paginated order fetch. After is the cursor
// from the previous page's EndCursor, empty for the first page.
type OrderPageRequest struct {
	First     int
	After     string
	UpdatedAt time.Time
}

// CatalogPageRequest describes one paginated product/collection fetch.
type CatalogPageRequest struct {
	First int
	After string
}

// ShopifyGateway is the port for the storefront platform's paginated GraphQL
// API. Implementations never panic on transport failure: all failures surface
// as typed errors from the commerce taxonomy.
type ShopifyGateway interface {
	// FetchOrders fetches one page of orders updated at or after the request
	// timestamp.
	FetchOrders(ctx context.Context, req OrderPageRequest) (*OrderPage, error)

	// FetchProducts fetches one page of products with variants.
	FetchProducts(ctx context.Context, req CatalogPageRequest) (*ProductPage, error)

	// FetchCollections fetches one page of collections.
	FetchCollections(ctx context.Context, req CatalogPageRequest) (*CollectionPage, error)
}

// ReturnPage is one page of returns from the returns-management platform.
type ReturnPage struct {
	Returns     []ReturnRecord
	HasNextPage bool
}

// ReturnPageRequest describes one paginated returns fetch. Pages are
// 1-indexed; ItemsPerPage is capped at 50 by the platform.
type ReturnPageRequest struct {
	Page         int
	ItemsPerPage int
	FromDate     time.Time
	ToDate       time.Time
}

// SwapGateway is the port for the returns-management platform's REST API.
type SwapGateway interface {
	// FetchReturns fetches one page of returns within the date window.
	FetchReturns(ctx context.Context, req ReturnPageRequest) (*ReturnPage, error)
}
