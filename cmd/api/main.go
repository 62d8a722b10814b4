package main

import (
	"context"
	"net/http"
	"os"

	"github.com/dvillegas/pricepilot-backend/api/routes"
	authsvc "github.com/dvillegas/pricepilot-backend/internal/auth"
	"github.com/dvillegas/pricepilot-backend/internal/catalog"
	"github.com/dvillegas/pricepilot-backend/internal/inventory"
	"github.com/dvillegas/pricepilot-backend/internal/shoppinglist"
	"github.com/dvillegas/pricepilot-backend/internal/users"
	"github.com/dvillegas/pricepilot-backend/pkg/auth/session"
	"github.com/dvillegas/pricepilot-backend/pkg/config"
	"github.com/dvillegas/pricepilot-backend/pkg/db"
	"github.com/dvillegas/pricepilot-backend/pkg/logger"
	"github.com/dvillegas/pricepilot-backend/pkg/migrate"
	"github.com/dvillegas/pricepilot-backend/pkg/redis"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	productRepo := catalog.NewProductRepository(dbClient.DB())
	supermarketRepo := catalog.NewSupermarketRepository(dbClient.DB())

	catalogService, err := catalog.NewService(productRepo, supermarketRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	ledgerRepo := inventory.NewRepository(dbClient)

	inventoryService, err := inventory.NewService(ledgerRepo, productRepo, supermarketRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	resolverService, err := shoppinglist.NewService(ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create shopping list service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			userRepo,
			authService,
			catalogService,
			inventoryService,
			resolverService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
