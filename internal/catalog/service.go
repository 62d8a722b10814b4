package catalog

import (
	"context"
	"errors"
	"fmt"

	pkgAuth "github.com/dvillegas/pricepilot-backend/pkg/auth"
	"github.com/dvillegas/pricepilot-backend/pkg/db"
	"github.com/dvillegas/pricepilot-backend/pkg/db/models"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	pkgerrors "github.com/dvillegas/pricepilot-backend/pkg/errors"
	"github.com/dvillegas/pricepilot-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes catalog management for products and supermarkets.
type Service interface {
	CreateProduct(ctx context.Context, actor pkgAuth.Identity, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, params pagination.Params) (*ProductListResult, error)
	UpdateProduct(ctx context.Context, actor pkgAuth.Identity, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (*DeleteConfirmation, error)

	CreateSupermarket(ctx context.Context, actor pkgAuth.Identity, input CreateSupermarketInput) (*SupermarketDTO, error)
	GetSupermarket(ctx context.Context, id uuid.UUID) (*SupermarketDTO, error)
	ListSupermarkets(ctx context.Context, params pagination.Params) (*SupermarketListResult, error)
	UpdateSupermarket(ctx context.Context, actor pkgAuth.Identity, id uuid.UUID, input UpdateSupermarketInput) (*SupermarketDTO, error)
	DeleteSupermarket(ctx context.Context, id uuid.UUID) (*DeleteConfirmation, error)
}

type productStore interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, params pagination.Params) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supermarketStore interface {
	Create(ctx context.Context, market *models.Supermarket) (*models.Supermarket, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error)
	List(ctx context.Context, params pagination.Params) ([]models.Supermarket, error)
	Update(ctx context.Context, market *models.Supermarket) (*models.Supermarket, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	products     productStore
	supermarkets supermarketStore
}

// NewService constructs the catalog service.
func NewService(products productStore, supermarkets supermarketStore) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if supermarkets == nil {
		return nil, fmt.Errorf("supermarket repository is required")
	}
	return &service{products: products, supermarkets: supermarkets}, nil
}

func (s *service) CreateProduct(ctx context.Context, actor pkgAuth.Identity, input CreateProductInput) (*ProductDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
	}

	product := &models.Product{
		Name:        input.Name,
		Category:    input.Category,
		Comments:    input.Comments,
		CreatedByID: actor.UserID,
		UpdatedByID: actor.UserID,
	}
	created, err := s.products.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with that name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return productFromModel(created), nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return productFromModel(product), nil
}

func (s *service) ListProducts(ctx context.Context, params pagination.Params) (*ProductListResult, error) {
	rows, err := s.products.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	result := &ProductListResult{Items: make([]ProductDTO, 0, len(rows))}
	for i := range rows {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: rows[i-1].CreatedAt,
				ID:        rows[i-1].ID,
			})
			result.NextCursor = &cursor
			break
		}
		result.Items = append(result.Items, *productFromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) UpdateProduct(ctx context.Context, actor pkgAuth.Identity, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.HasFieldChanges() && !actor.Role.Meets(enums.UserRoleAdmin) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "changing product fields requires admin role")
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = *input.Name
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Comments != nil {
		product.Comments = input.Comments
	}
	product.UpdatedByID = actor.UserID

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with that name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return productFromModel(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) (*DeleteConfirmation, error) {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return &DeleteConfirmation{ID: id, Deleted: true}, nil
}

func (s *service) CreateSupermarket(ctx context.Context, actor pkgAuth.Identity, input CreateSupermarketInput) (*SupermarketDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supermarket name is required")
	}
	if input.City == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supermarket city is required")
	}

	market := &models.Supermarket{
		Name:        input.Name,
		City:        input.City,
		Comments:    input.Comments,
		CreatedByID: actor.UserID,
		UpdatedByID: actor.UserID,
	}
	created, err := s.supermarkets.Create(ctx, market)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create supermarket")
	}
	return supermarketFromModel(created), nil
}

func (s *service) GetSupermarket(ctx context.Context, id uuid.UUID) (*SupermarketDTO, error) {
	market, err := s.supermarkets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supermarket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supermarket")
	}
	return supermarketFromModel(market), nil
}

func (s *service) ListSupermarkets(ctx context.Context, params pagination.Params) (*SupermarketListResult, error) {
	rows, err := s.supermarkets.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list supermarkets")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	result := &SupermarketListResult{Items: make([]SupermarketDTO, 0, len(rows))}
	for i := range rows {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: rows[i-1].CreatedAt,
				ID:        rows[i-1].ID,
			})
			result.NextCursor = &cursor
			break
		}
		result.Items = append(result.Items, *supermarketFromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) UpdateSupermarket(ctx context.Context, actor pkgAuth.Identity, id uuid.UUID, input UpdateSupermarketInput) (*SupermarketDTO, error) {
	market, err := s.supermarkets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supermarket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supermarket")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "supermarket name cannot be empty")
		}
		market.Name = *input.Name
	}
	if input.City != nil {
		if *input.City == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "supermarket city cannot be empty")
		}
		market.City = *input.City
	}
	if input.Comments != nil {
		market.Comments = input.Comments
	}
	market.UpdatedByID = actor.UserID

	updated, err := s.supermarkets.Update(ctx, market)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update supermarket")
	}
	return supermarketFromModel(updated), nil
}

func (s *service) DeleteSupermarket(ctx context.Context, id uuid.UUID) (*DeleteConfirmation, error) {
	if err := s.supermarkets.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supermarket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete supermarket")
	}
	return &DeleteConfirmation{ID: id, Deleted: true}, nil
}
