package shoppinglist

import (
	"github.com/dvillegas/pricepilot-backend/pkg/types"
	"github.com/google/uuid"
)

// LineRequest is one (product, quantity) pair in the submitted list.
type LineRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int64     `json:"quantity" validate:"required,gt=0"`
}

// ResolveRequest is the validated payload for shopping list resolution.
type ResolveRequest struct {
	City          string        `json:"city" validate:"required,min=1,max=120"`
	ShoppingItems []LineRequest `json:"shoppingItems" validate:"required,min=1,dive"`
}

// ResolvedLine is one output line. A line whose product has no in-stock
// offer in the city carries a placeholder name, "N/A" supermarket, and
// zero amounts.
type ResolvedLine struct {
	ProductName     string      `json:"productName"`
	SupermarketName string      `json:"supermarketName"`
	Quantity        int64       `json:"quantity"`
	LowestPrice     types.Money `json:"lowestPrice"`
	Subtotal        types.Money `json:"subtotal"`
}

// ResolveResponse is the itemized result plus the total.
type ResolveResponse struct {
	UserEmail     string         `json:"userEmail"`
	CurrentDate   string         `json:"currentDate"`
	City          string         `json:"city"`
	ShoppingItems []ResolvedLine `json:"shoppingItems"`
	Total         types.Money    `json:"total"`
}
