package inventory

import (
	"context"
	"errors"
	"fmt"

	pkgAuth "github.com/dvillegas/pricepilot-backend/pkg/auth"
	"github.com/dvillegas/pricepilot-backend/pkg/db/models"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	pkgerrors "github.com/dvillegas/pricepilot-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes ledger management and cheapest-offer lookups.
type Service interface {
	UpsertEntry(ctx context.Context, actor pkgAuth.Identity, input UpsertEntryInput) (*EntryDTO, error)
	ListAll(ctx context.Context) ([]EntryDTO, error)
	ListBySupermarket(ctx context.Context, supermarketID uuid.UUID) ([]EntryDTO, error)
	FindCheapest(ctx context.Context, productID uuid.UUID, city string) (*OfferDTO, error)
	ListCheapestByCategory(ctx context.Context, city string, category enums.ProductCategory) ([]CategoryOfferDTO, error)
	UpdateEntry(ctx context.Context, actor pkgAuth.Identity, supermarketID, productID uuid.UUID, input UpdateEntryInput) (*EntryDTO, error)
	DeleteEntry(ctx context.Context, supermarketID, productID uuid.UUID) (*DeleteConfirmation, error)
}

type ledgerStore interface {
	Upsert(ctx context.Context, entry *models.InventoryEntry) (*models.InventoryEntry, error)
	FindByKey(ctx context.Context, supermarketID, productID uuid.UUID) (*models.InventoryEntry, error)
	ListAll(ctx context.Context) ([]models.InventoryEntry, error)
	ListBySupermarket(ctx context.Context, supermarketID uuid.UUID) ([]models.InventoryEntry, error)
	FindCheapest(ctx context.Context, productID uuid.UUID, city string) (*Offer, error)
	ListCheapestByCategory(ctx context.Context, city string, category enums.ProductCategory) ([]Offer, error)
	Update(ctx context.Context, entry *models.InventoryEntry) (*models.InventoryEntry, error)
	Delete(ctx context.Context, supermarketID, productID uuid.UUID) error
}

type productChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type supermarketChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error)
}

type service struct {
	ledger       ledgerStore
	products     productChecker
	supermarkets supermarketChecker
}

// NewService constructs the inventory service.
func NewService(ledger ledgerStore, products productChecker, supermarkets supermarketChecker) (Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger repository is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if supermarkets == nil {
		return nil, fmt.Errorf("supermarket repository is required")
	}
	return &service{ledger: ledger, products: products, supermarkets: supermarkets}, nil
}

func (s *service) UpsertEntry(ctx context.Context, actor pkgAuth.Identity, input UpsertEntryInput) (*EntryDTO, error) {
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if err := s.ensureForeignKeys(ctx, input.SupermarketID, input.ProductID); err != nil {
		return nil, err
	}

	entry := &models.InventoryEntry{
		SupermarketID: input.SupermarketID,
		ProductID:     input.ProductID,
		PriceCents:    input.PriceCents,
		InStock:       input.InStock,
		CreatedByID:   actor.UserID,
		UpdatedByID:   actor.UserID,
	}
	saved, err := s.ledger.Upsert(ctx, entry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert ledger entry")
	}
	return entryFromModel(saved), nil
}

func (s *service) ListAll(ctx context.Context) ([]EntryDTO, error) {
	entries, err := s.ledger.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ledger entries")
	}
	return entriesToDTOs(entries), nil
}

func (s *service) ListBySupermarket(ctx context.Context, supermarketID uuid.UUID) ([]EntryDTO, error) {
	entries, err := s.ledger.ListBySupermarket(ctx, supermarketID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list supermarket entries")
	}
	if len(entries) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supermarket has no ledger entries")
	}
	return entriesToDTOs(entries), nil
}

func (s *service) FindCheapest(ctx context.Context, productID uuid.UUID, city string) (*OfferDTO, error) {
	if city == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	offer, err := s.ledger.FindCheapest(ctx, productID, city)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no in-stock offer for product in city")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find cheapest offer")
	}
	return offerFromRow(offer), nil
}

func (s *service) ListCheapestByCategory(ctx context.Context, city string, category enums.ProductCategory) ([]CategoryOfferDTO, error) {
	if city == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
	}

	offers, err := s.ledger.ListCheapestByCategory(ctx, city, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cheapest by category")
	}
	out := make([]CategoryOfferDTO, 0, len(offers))
	for _, offer := range offers {
		out = append(out, categoryOfferFromRow(offer))
	}
	return out, nil
}

func (s *service) UpdateEntry(ctx context.Context, actor pkgAuth.Identity, supermarketID, productID uuid.UUID, input UpdateEntryInput) (*EntryDTO, error) {
	entry, err := s.ledger.FindByKey(ctx, supermarketID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ledger entry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ledger entry")
	}

	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		entry.PriceCents = *input.PriceCents
	}
	if input.InStock != nil {
		entry.InStock = *input.InStock
	}
	entry.UpdatedByID = actor.UserID

	updated, err := s.ledger.Update(ctx, entry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update ledger entry")
	}
	return entryFromModel(updated), nil
}

func (s *service) DeleteEntry(ctx context.Context, supermarketID, productID uuid.UUID) (*DeleteConfirmation, error) {
	if err := s.ledger.Delete(ctx, supermarketID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ledger entry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete ledger entry")
	}
	return &DeleteConfirmation{
		SupermarketID: supermarketID,
		ProductID:     productID,
		Deleted:       true,
	}, nil
}

func (s *service) ensureForeignKeys(ctx context.Context, supermarketID, productID uuid.UUID) error {
	if _, err := s.supermarkets.FindByID(ctx, supermarketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "supermarket not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supermarket")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return nil
}

func entriesToDTOs(entries []models.InventoryEntry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, *entryFromModel(&entries[i]))
	}
	return out
}
