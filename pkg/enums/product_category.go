package enums

import (
	"fmt"
	"strings"
)

// ProductCategory is the closed set of catalog categories.
type ProductCategory string

const (
	ProductCategoryProduce   ProductCategory = "produce"
	ProductCategoryDairy     ProductCategory = "dairy"
	ProductCategoryMeat      ProductCategory = "meat"
	ProductCategorySeafood   ProductCategory = "seafood"
	ProductCategoryBakery    ProductCategory = "bakery"
	ProductCategoryBeverages ProductCategory = "beverages"
	ProductCategoryFrozen    ProductCategory = "frozen"
	ProductCategoryPantry    ProductCategory = "pantry"
	ProductCategorySnacks    ProductCategory = "snacks"
	ProductCategoryHousehold ProductCategory = "household"
)

var validProductCategories = []ProductCategory{
	ProductCategoryProduce,
	ProductCategoryDairy,
	ProductCategoryMeat,
	ProductCategorySeafood,
	ProductCategoryBakery,
	ProductCategoryBeverages,
	ProductCategoryFrozen,
	ProductCategoryPantry,
	ProductCategorySnacks,
	ProductCategoryHousehold,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	normalized := ProductCategory(strings.ToLower(strings.TrimSpace(value)))
	if !normalized.IsValid() {
		return "", fmt.Errorf("invalid product category %q", value)
	}
	return normalized, nil
}

// ProductCategories returns the full closed set.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}
