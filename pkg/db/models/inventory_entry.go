package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryEntry is a ledger entry: the current price and stock status of a
// product at a supermarket. At most one entry exists per
// (supermarket, product) pair.
type InventoryEntry struct {
	SupermarketID uuid.UUID `gorm:"column:supermarket_id;type:uuid;primaryKey"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	PriceCents    int64     `gorm:"column:price_cents;not null"`
	InStock       bool      `gorm:"column:in_stock;not null"`
	CreatedByID   uuid.UUID `gorm:"column:created_by_id;type:uuid;not null"`
	UpdatedByID   uuid.UUID `gorm:"column:updated_by_id;type:uuid;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Supermarket *Supermarket `gorm:"foreignKey:SupermarketID;constraint:OnDelete:CASCADE"`
	Product     *Product     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
