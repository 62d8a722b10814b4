package catalog

import (
	"strings"
	"time"

	"github.com/dvillegas/pricepilot-backend/pkg/db/models"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	pkgerrors "github.com/dvillegas/pricepilot-backend/pkg/errors"
	"github.com/google/uuid"
)

// ProductDTO is the transport shape for catalog products.
type ProductDTO struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Category  enums.ProductCategory `json:"category"`
	Comments  *string               `json:"comments,omitempty"`
	CreatedBy uuid.UUID             `json:"createdBy"`
	UpdatedBy uuid.UUID             `json:"updatedBy"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// SupermarketDTO is the transport shape for supermarkets.
type SupermarketDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Comments  *string   `json:"comments,omitempty"`
	CreatedBy uuid.UUID `json:"createdBy"`
	UpdatedBy uuid.UUID `json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductListResult pairs a page of products with the next cursor.
type ProductListResult struct {
	Items      []ProductDTO `json:"items"`
	NextCursor *string      `json:"nextCursor,omitempty"`
}

// SupermarketListResult pairs a page of supermarkets with the next cursor.
type SupermarketListResult struct {
	Items      []SupermarketDTO `json:"items"`
	NextCursor *string          `json:"nextCursor,omitempty"`
}

// DeleteConfirmation is returned by delete endpoints instead of an empty body.
type DeleteConfirmation struct {
	ID      uuid.UUID `json:"id"`
	Deleted bool      `json:"deleted"`
}

// CreateProductRequest is the validated payload for product creation.
type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	Category string  `json:"category" validate:"required"`
	Comments *string `json:"comments" validate:"omitempty,max=500"`
}

// CreateProductInput is the typed input consumed by the service.
type CreateProductInput struct {
	Name     string
	Category enums.ProductCategory
	Comments *string
}

// ToInput parses the raw category into its typed enum.
func (r CreateProductRequest) ToInput() (CreateProductInput, error) {
	category, err := enums.ParseProductCategory(r.Category)
	if err != nil {
		return CreateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category").
			WithDetails(map[string]string{"category": r.Category})
	}
	return CreateProductInput{
		Name:     strings.TrimSpace(r.Name),
		Category: category,
		Comments: r.Comments,
	}, nil
}

// UpdateProductRequest carries optional product mutations.
type UpdateProductRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=200"`
	Category *string `json:"category"`
	Comments *string `json:"comments" validate:"omitempty,max=500"`
}

// UpdateProductInput is the typed patch consumed by the service.
type UpdateProductInput struct {
	Name     *string
	Category *enums.ProductCategory
	Comments *string
}

// ToInput parses the optional category into its typed enum.
func (r UpdateProductRequest) ToInput() (UpdateProductInput, error) {
	input := UpdateProductInput{Comments: r.Comments}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		input.Name = &trimmed
	}
	if r.Category != nil {
		category, err := enums.ParseProductCategory(*r.Category)
		if err != nil {
			return UpdateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category").
				WithDetails(map[string]string{"category": *r.Category})
		}
		input.Category = &category
	}
	return input, nil
}

// HasFieldChanges reports whether the patch mutates any product field.
func (p UpdateProductInput) HasFieldChanges() bool {
	return p.Name != nil || p.Category != nil || p.Comments != nil
}

// CreateSupermarketRequest is the validated payload for supermarket creation.
type CreateSupermarketRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	City     string  `json:"city" validate:"required,min=1,max=120"`
	Comments *string `json:"comments" validate:"omitempty,max=500"`
}

// CreateSupermarketInput is the typed input consumed by the service.
type CreateSupermarketInput struct {
	Name     string
	City     string
	Comments *string
}

// ToInput trims the locality fields before they reach the service.
func (r CreateSupermarketRequest) ToInput() CreateSupermarketInput {
	return CreateSupermarketInput{
		Name:     strings.TrimSpace(r.Name),
		City:     strings.TrimSpace(r.City),
		Comments: r.Comments,
	}
}

// UpdateSupermarketRequest carries optional supermarket mutations.
type UpdateSupermarketRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=200"`
	City     *string `json:"city" validate:"omitempty,min=1,max=120"`
	Comments *string `json:"comments" validate:"omitempty,max=500"`
}

// UpdateSupermarketInput is the typed patch consumed by the service.
type UpdateSupermarketInput struct {
	Name     *string
	City     *string
	Comments *string
}

// ToInput trims the optional locality fields.
func (r UpdateSupermarketRequest) ToInput() UpdateSupermarketInput {
	input := UpdateSupermarketInput{Comments: r.Comments}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		input.Name = &trimmed
	}
	if r.City != nil {
		trimmed := strings.TrimSpace(*r.City)
		input.City = &trimmed
	}
	return input
}

func productFromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Comments:  p.Comments,
		CreatedBy: p.CreatedByID,
		UpdatedBy: p.UpdatedByID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func supermarketFromModel(s *models.Supermarket) *SupermarketDTO {
	if s == nil {
		return nil
	}
	return &SupermarketDTO{
		ID:        s.ID,
		Name:      s.Name,
		City:      s.City,
		Comments:  s.Comments,
		CreatedBy: s.CreatedByID,
		UpdatedBy: s.UpdatedByID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
