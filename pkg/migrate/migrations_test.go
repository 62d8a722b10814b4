package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dvillegas/pricepilot-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestUsersMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_users_table.sql")

	checks := []string{
		"CREATE TYPE user_role AS ENUM",
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestProductsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")

	checks := []string{
		"CREATE TYPE product_category AS ENUM",
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name",
		"CREATE INDEX IF NOT EXISTS idx_products_category",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestInventoryMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_inventory_entries_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory_entries",
		"REFERENCES supermarkets (id) ON DELETE CASCADE",
		"REFERENCES products (id) ON DELETE CASCADE",
		"PRIMARY KEY (supermarket_id, product_id)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_entries_product_in_stock",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
