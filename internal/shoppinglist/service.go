package shoppinglist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvillegas/pricepilot-backend/internal/inventory"
	pkgAuth "github.com/dvillegas/pricepilot-backend/pkg/auth"
	pkgerrors "github.com/dvillegas/pricepilot-backend/pkg/errors"
	"github.com/dvillegas/pricepilot-backend/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// maxConcurrentLookups bounds the per-request fan-out against the ledger.
const maxConcurrentLookups = 8

const missingSupermarketName = "N/A"

// Service resolves a shopping list to its cheapest in-city offers.
type Service interface {
	Resolve(ctx context.Context, actor pkgAuth.Identity, req ResolveRequest) (*ResolveResponse, error)
}

type offerFinder interface {
	FindCheapest(ctx context.Context, productID uuid.UUID, city string) (*inventory.Offer, error)
}

type service struct {
	ledger offerFinder
	now    func() time.Time
}

// NewService constructs the resolver service.
func NewService(ledger offerFinder) (Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger repository is required")
	}
	return &service{ledger: ledger, now: time.Now}, nil
}

// Resolve looks up the cheapest in-stock offer for every line concurrently.
// Output order matches input order, a miss soft-fails its own line only, and
// the total is the rounded sum of the already-rounded subtotals.
func (s *service) Resolve(ctx context.Context, actor pkgAuth.Identity, req ResolveRequest) (*ResolveResponse, error) {
	if req.City == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	if len(req.ShoppingItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shoppingItems cannot be empty")
	}
	for i, line := range req.ShoppingItems {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
				WithDetails(map[string]any{"line": i, "quantity": line.Quantity})
		}
	}

	lines := make([]ResolvedLine, len(req.ShoppingItems))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentLookups)

	for i, item := range req.ShoppingItems {
		group.Go(func() error {
			offer, err := s.ledger.FindCheapest(groupCtx, item.ProductID, req.City)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					lines[i] = missedLine(item, req.City)
					return nil
				}
				return fmt.Errorf("resolve line %d: %w", i, err)
			}
			lines[i] = resolvedLine(item, offer)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve shopping list")
	}

	total := types.MoneyZero()
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}

	return &ResolveResponse{
		UserEmail:     actor.Email,
		CurrentDate:   s.now().UTC().Format(time.RFC3339),
		City:          req.City,
		ShoppingItems: lines,
		Total:         total.Round2(),
	}, nil
}

func resolvedLine(item LineRequest, offer *inventory.Offer) ResolvedLine {
	price := types.MoneyFromCents(offer.PriceCents)
	return ResolvedLine{
		ProductName:     offer.ProductName,
		SupermarketName: offer.SupermarketName,
		Quantity:        item.Quantity,
		LowestPrice:     price,
		Subtotal:        price.MulInt(item.Quantity),
	}
}

func missedLine(item LineRequest, city string) ResolvedLine {
	return ResolvedLine{
		ProductName:     fmt.Sprintf("Product with ID %s not found in %s", item.ProductID, city),
		SupermarketName: missingSupermarketName,
		Quantity:        item.Quantity,
		LowestPrice:     types.MoneyZero(),
		Subtotal:        types.MoneyZero(),
	}
}
