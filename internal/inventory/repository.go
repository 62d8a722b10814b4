package inventory

import (
	"context"

	pkgdb "github.com/dvillegas/pricepilot-backend/pkg/db"
	"github.com/dvillegas/pricepilot-backend/pkg/db/models"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Offer is a priced in-stock entry joined with its supermarket and product.
type Offer struct {
	ProductID       uuid.UUID
	ProductName     string
	SupermarketID   uuid.UUID
	SupermarketName string
	PriceCents      int64
}

const cheapestByCategoryQuery = `
SELECT product_id, product_name, supermarket_id, supermarket_name, price_cents
FROM (
  SELECT ie.product_id,
         p.name AS product_name,
         ie.supermarket_id,
         s.name AS supermarket_name,
         ie.price_cents,
         ROW_NUMBER() OVER (
           PARTITION BY ie.product_id
           ORDER BY ie.price_cents ASC, ie.supermarket_id ASC
         ) AS rn
  FROM inventory_entries ie
  JOIN supermarkets s ON s.id = ie.supermarket_id
  JOIN products p ON p.id = ie.product_id
  WHERE s.city = ? AND p.category = ? AND ie.in_stock = ?
) ranked
WHERE rn = 1
ORDER BY product_name ASC
`

// Repository exposes persistence operations for ledger entries.
type Repository struct {
	client *pkgdb.Client
	db     *gorm.DB
}

// NewRepository builds an inventory repo on the shared database client.
func NewRepository(client *pkgdb.Client) *Repository {
	return &Repository{client: client, db: client.DB()}
}

// Upsert inserts the ledger entry or updates the existing row for the
// (supermarket, product) pair. The write and the read-back share one
// transaction so the returned row reflects this upsert and not a
// concurrent one.
func (r *Repository) Upsert(ctx context.Context, entry *models.InventoryEntry) (*models.InventoryEntry, error) {
	var saved models.InventoryEntry
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "supermarket_id"}, {Name: "product_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"price_cents", "in_stock", "updated_by_id", "updated_at",
				}),
			}).
			Create(entry).Error; err != nil {
			return err
		}
		return tx.
			First(&saved, "supermarket_id = ? AND product_id = ?", entry.SupermarketID, entry.ProductID).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// FindByKey loads the entry for the composite key.
func (r *Repository) FindByKey(ctx context.Context, supermarketID, productID uuid.UUID) (*models.InventoryEntry, error) {
	var entry models.InventoryEntry
	err := r.db.WithContext(ctx).
		First(&entry, "supermarket_id = ? AND product_id = ?", supermarketID, productID).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListAll returns every ledger entry ordered by its composite key.
func (r *Repository) ListAll(ctx context.Context) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	err := r.db.WithContext(ctx).
		Order("supermarket_id ASC, product_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListBySupermarket returns all entries belonging to one supermarket.
func (r *Repository) ListBySupermarket(ctx context.Context, supermarketID uuid.UUID) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	err := r.db.WithContext(ctx).
		Where("supermarket_id = ?", supermarketID).
		Order("product_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindCheapest returns the minimum-price in-stock offer for the product in
// the city. Ties resolve to the lowest supermarket id so the result is stable.
func (r *Repository) FindCheapest(ctx context.Context, productID uuid.UUID, city string) (*Offer, error) {
	var offer Offer
	err := r.db.WithContext(ctx).
		Table("inventory_entries AS ie").
		Select("ie.product_id, p.name AS product_name, ie.supermarket_id, s.name AS supermarket_name, ie.price_cents").
		Joins("JOIN supermarkets s ON s.id = ie.supermarket_id").
		Joins("JOIN products p ON p.id = ie.product_id").
		Where("ie.product_id = ? AND s.city = ? AND ie.in_stock = ?", productID, city, true).
		Order("ie.price_cents ASC, ie.supermarket_id ASC").
		Take(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListCheapestByCategory returns, for every product of the category with at
// least one in-stock entry in the city, its single cheapest offer.
func (r *Repository) ListCheapestByCategory(ctx context.Context, city string, category enums.ProductCategory) ([]Offer, error) {
	var offers []Offer
	err := r.db.WithContext(ctx).
		Raw(cheapestByCategoryQuery, city, category, true).
		Scan(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// Update persists the full ledger row.
func (r *Repository) Update(ctx context.Context, entry *models.InventoryEntry) (*models.InventoryEntry, error) {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the entry for the composite key.
func (r *Repository) Delete(ctx context.Context, supermarketID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.InventoryEntry{}, "supermarket_id = ? AND product_id = ?", supermarketID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
