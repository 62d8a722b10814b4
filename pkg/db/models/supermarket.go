package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supermarket represents a store located in a city. City is the only
// locality key used when resolving cheapest offers.
type Supermarket struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;type:text;not null"`
	City        string    `gorm:"column:city;type:text;not null;index"`
	Comments    *string   `gorm:"column:comments"`
	CreatedByID uuid.UUID `gorm:"column:created_by_id;type:uuid;not null"`
	UpdatedByID uuid.UUID `gorm:"column:updated_by_id;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key when the caller left it unset.
func (s *Supermarket) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
