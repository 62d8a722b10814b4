package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dvillegas/pricepilot-backend/internal/users"
	"github.com/dvillegas/pricepilot-backend/pkg/config"
	"github.com/dvillegas/pricepilot-backend/pkg/db"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	"github.com/dvillegas/pricepilot-backend/pkg/logger"
	"github.com/dvillegas/pricepilot-backend/pkg/security"
	"github.com/joho/godotenv"
)

// Seeds an initial account so a fresh deployment has a way to log in.
// Credentials come from flags or the PRICEPILOT_SEED_* environment variables.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	email := flag.String("email", os.Getenv("PRICEPILOT_SEED_EMAIL"), "email for the seeded account")
	password := flag.String("password", os.Getenv("PRICEPILOT_SEED_PASSWORD"), "password for the seeded account")
	role := flag.String("role", envOrDefault("PRICEPILOT_SEED_ROLE", "admin"), "role for the seeded account")

	flag.Parse()

	if strings.TrimSpace(*email) == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both -email and -password are required")
		os.Exit(1)
	}

	parsedRole, err := enums.ParseUserRole(*role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid role %q\n", *role)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	active := true
	user, err := users.NewRepository(dbClient.DB()).UpsertByEmail(ctx, users.CreateUserDTO{
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
		Role:         parsedRole,
		IsActive:     &active,
	})
	if err != nil {
		logg.Error(ctx, "failed to seed user", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    string(user.Role),
	})
	logg.Info(ctx, "seed user ready")
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
