package users

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dvillegas/pricepilot-backend/pkg/db/models"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
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

	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func TestCreateAndFindUser(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        "ana@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.Role != enums.UserRoleBasic {
		t.Fatalf("role = %q, want basic default", created.Role)
	}
	if !created.IsActive {
		t.Fatal("new user should be active by default")
	}

	byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("FindByEmail id = %s, want %s", byEmail.ID, created.ID)
	}

	byID, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.Email != "ana@example.com" {
		t.Fatalf("FindByID email = %q", byID.Email)
	}
}

func TestFindByEmailMissing(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestUpdateLastLogin(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{Email: "ana@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.LastLoginAt != nil {
		t.Fatal("fresh user should have no last login")
	}

	at := time.Date(2026, 1, 12, 8, 30, 0, 0, time.UTC)
	if err := repo.UpdateLastLogin(ctx, created.ID, at); err != nil {
		t.Fatalf("update last login: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.LastLoginAt == nil || !reloaded.LastLoginAt.Equal(at) {
		t.Fatalf("last_login_at = %v, want %v", reloaded.LastLoginAt, at)
	}
}

func TestUpsertByEmail(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	inactive := false
	first, err := repo.UpsertByEmail(ctx, CreateUserDTO{
		Email:        "ops@example.com",
		PasswordHash: "hash-1",
		Role:         enums.UserRoleAdmin,
		IsActive:     &inactive,
	})
	if err != nil {
		t.Fatalf("upsert insert: %v", err)
	}
	if first.IsActive {
		t.Fatal("upsert should honor the explicit inactive flag")
	}

	active := true
	second, err := repo.UpsertByEmail(ctx, CreateUserDTO{
		Email:        "ops@example.com",
		PasswordHash: "hash-2",
		Role:         enums.UserRoleVerified,
		IsActive:     &active,
	})
	if err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a second row: %s vs %s", second.ID, first.ID)
	}
	if second.PasswordHash != "hash-2" || second.Role != enums.UserRoleVerified || !second.IsActive {
		t.Fatalf("upsert did not update mutable fields: %+v", second)
	}

	var count int64
	if err := repo.db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("user rows = %d, want 1", count)
	}
}
