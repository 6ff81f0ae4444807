package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// StoreModel is the persistence model for the Store entity. A store is
// unique per platform and external domain.
type StoreModel struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key"`
	Platform       commerce.Platform  `gorm:"type:varchar(20);not null;uniqueIndex:idx_store_platform_domain,priority:1"`
	ExternalDomain string             `gorm:"type:varchar(255);not null;uniqueIndex:idx_store_platform_domain,priority:2"`
	AccessToken    string             `gorm:"type:varchar(255);not null"`
	LastSyncedAt   *time.Time         `gorm:"index"`
	CreatedAt      time.Time          `gorm:"not null"`
	UpdatedAt      time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store entity.
func (m *StoreModel) ToDomain() *commerce.Store {
	return &commerce.Store{
		ID:             m.ID,
		Platform:       m.Platform,
		ExternalDomain: m.ExternalDomain,
		AccessToken:    m.AccessToken,
		LastSyncedAt:   m.LastSyncedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Store entity.
func (m *StoreModel) FromDomain(s *commerce.Store) {
	m.ID = s.ID
	m.Platform = s.Platform
	m.ExternalDomain = s.ExternalDomain
	m.AccessToken = s.AccessToken
	m.LastSyncedAt = s.LastSyncedAt
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}

// StoreModelFromDomain creates a new persistence model from a domain Store entity.
func StoreModelFromDomain(s *commerce.Store) *StoreModel {
	m := &StoreModel{}
	m.FromDomain(s)
	return m
}
