// Package models contains GORM-specific persistence models that map to
// database tables. These models are separate from the commerce domain
// entities to keep the domain layer free from ORM concerns.
//
// Structure:
// - store.go: synced platform stores and their sync bookkeeping
// - orders.go: orders and line items ingested from Shopify
// - catalog.go: products, variants, collections and their links
// - returns.go: returns and returned products ingested from Swap
package models
