package catalog

import (
	"context"

	"github.com/dvillegas/pricepilot-backend/pkg/db/models"
	"github.com/dvillegas/pricepilot-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository exposes persistence operations for catalog products.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a product repo tied to the provided GORM DB.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product by its UUID.
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns a page of products ordered by creation time then id.
func (r *ProductRepository) List(ctx context.Context, params pagination.Params) ([]models.Product, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Order("created_at ASC, id ASC").
		Limit(pagination.LimitWithBuffer(params.Limit))
	if cursor != nil {
		query = query.Where(
			"created_at > ? OR (created_at = ? AND id > ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update persists the full product row.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product. The ledger rows cascade at the database level.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SupermarketRepository exposes persistence operations for supermarkets.
type SupermarketRepository struct {
	db *gorm.DB
}

// NewSupermarketRepository builds a supermarket repo tied to the provided GORM DB.
func NewSupermarketRepository(db *gorm.DB) *SupermarketRepository {
	return &SupermarketRepository{db: db}
}

// Create inserts a new supermarket.
func (r *SupermarketRepository) Create(ctx context.Context, market *models.Supermarket) (*models.Supermarket, error) {
	if err := r.db.WithContext(ctx).Create(market).Error; err != nil {
		return nil, err
	}
	return market, nil
}

// FindByID loads a supermarket by its UUID.
func (r *SupermarketRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error) {
	var market models.Supermarket
	if err := r.db.WithContext(ctx).First(&market, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &market, nil
}

// List returns a page of supermarkets ordered by creation time then id.
func (r *SupermarketRepository) List(ctx context.Context, params pagination.Params) ([]models.Supermarket, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Supermarket{}).
		Order("created_at ASC, id ASC").
		Limit(pagination.LimitWithBuffer(params.Limit))
	if cursor != nil {
		query = query.Where(
			"created_at > ? OR (created_at = ? AND id > ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var markets []models.Supermarket
	if err := query.Find(&markets).Error; err != nil {
		return nil, err
	}
	return markets, nil
}

// Update persists the full supermarket row.
func (r *SupermarketRepository) Update(ctx context.Context, market *models.Supermarket) (*models.Supermarket, error) {
	if err := r.db.WithContext(ctx).Save(market).Error; err != nil {
		return nil, err
	}
	return market, nil
}

// Delete removes the supermarket. The ledger rows cascade at the database level.
func (r *SupermarketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Supermarket{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
