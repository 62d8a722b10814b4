package models

import (
	"time"

	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog item users can price-compare.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name        string                `gorm:"column:name;type:text;not null;uniqueIndex"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Comments    *string               `gorm:"column:comments"`
	CreatedByID uuid.UUID             `gorm:"column:created_by_id;type:uuid;not null"`
	UpdatedByID uuid.UUID             `gorm:"column:updated_by_id;type:uuid;not null"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key when the caller left it unset.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
