package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dvillegas/pricepilot-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := conn.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Supermarket{},
		&models.InventoryEntry{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}
