package inventory

import (
	"time"

	"github.com/dvillegas/pricepilot-backend/pkg/db/models"
	pkgerrors "github.com/dvillegas/pricepilot-backend/pkg/errors"
	"github.com/dvillegas/pricepilot-backend/pkg/types"
	"github.com/google/uuid"
)

// EntryDTO is the transport shape for a ledger entry.
type EntryDTO struct {
	SupermarketID uuid.UUID   `json:"supermarketId"`
	ProductID     uuid.UUID   `json:"productId"`
	Price         types.Money `json:"price"`
	InStock       bool        `json:"inStock"`
	CreatedBy     uuid.UUID   `json:"createdBy"`
	UpdatedBy     uuid.UUID   `json:"updatedBy"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// OfferDTO describes the cheapest in-stock offer for a product in a city.
type OfferDTO struct {
	ProductID       uuid.UUID   `json:"productId"`
	ProductName     string      `json:"productName"`
	SupermarketID   uuid.UUID   `json:"supermarketId"`
	SupermarketName string      `json:"supermarketName"`
	Price           types.Money `json:"price"`
}

// CategoryOfferDTO pairs a product with its cheapest offer for the
// cheapest-by-category listing.
type CategoryOfferDTO struct {
	ProductName     string      `json:"productName"`
	SupermarketName string      `json:"supermarketName"`
	Price           types.Money `json:"price"`
}

// DeleteConfirmation is returned by the entry delete endpoint.
type DeleteConfirmation struct {
	SupermarketID uuid.UUID `json:"supermarketId"`
	ProductID     uuid.UUID `json:"productId"`
	Deleted       bool      `json:"deleted"`
}

// UpsertEntryRequest is the validated payload for entry creation/upsert.
type UpsertEntryRequest struct {
	SupermarketID uuid.UUID   `json:"supermarketId" validate:"required"`
	ProductID     uuid.UUID   `json:"productId" validate:"required"`
	Price         types.Money `json:"price" validate:"required"`
	InStock       *bool       `json:"inStock"`
}

// UpsertEntryInput is the typed input consumed by the service.
type UpsertEntryInput struct {
	SupermarketID uuid.UUID
	ProductID     uuid.UUID
	PriceCents    int64
	InStock       bool
}

// ToInput validates the price and applies the in-stock default.
func (r UpsertEntryRequest) ToInput() (UpsertEntryInput, error) {
	cents, err := priceToCents(r.Price)
	if err != nil {
		return UpsertEntryInput{}, err
	}
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	return UpsertEntryInput{
		SupermarketID: r.SupermarketID,
		ProductID:     r.ProductID,
		PriceCents:    cents,
		InStock:       inStock,
	}, nil
}

// UpdateEntryRequest carries optional entry mutations.
type UpdateEntryRequest struct {
	Price   *types.Money `json:"price" validate:"-"`
	InStock *bool        `json:"inStock"`
}

// UpdateEntryInput is the typed patch consumed by the service.
type UpdateEntryInput struct {
	PriceCents *int64
	InStock    *bool
}

// ToInput validates the optional price.
func (r UpdateEntryRequest) ToInput() (UpdateEntryInput, error) {
	input := UpdateEntryInput{InStock: r.InStock}
	if r.Price != nil {
		cents, err := priceToCents(*r.Price)
		if err != nil {
			return UpdateEntryInput{}, err
		}
		input.PriceCents = &cents
	}
	return input, nil
}

func priceToCents(price types.Money) (int64, error) {
	if price.IsNegative() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	cents, err := price.Cents()
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "price cannot have more than two decimal places")
	}
	return cents, nil
}

func entryFromModel(e *models.InventoryEntry) *EntryDTO {
	if e == nil {
		return nil
	}
	return &EntryDTO{
		SupermarketID: e.SupermarketID,
		ProductID:     e.ProductID,
		Price:         types.MoneyFromCents(e.PriceCents),
		InStock:       e.InStock,
		CreatedBy:     e.CreatedByID,
		UpdatedBy:     e.UpdatedByID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func offerFromRow(o *Offer) *OfferDTO {
	if o == nil {
		return nil
	}
	return &OfferDTO{
		ProductID:       o.ProductID,
		ProductName:     o.ProductName,
		SupermarketID:   o.SupermarketID,
		SupermarketName: o.SupermarketName,
		Price:           types.MoneyFromCents(o.PriceCents),
	}
}

func categoryOfferFromRow(o Offer) CategoryOfferDTO {
	return CategoryOfferDTO{
		ProductName:     o.ProductName,
		SupermarketName: o.SupermarketName,
		Price:           types.MoneyFromCents(o.PriceCents),
	}
}
