package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dvillegas/pricepilot-backend/api/controllers"
	"github.com/dvillegas/pricepilot-backend/api/middleware"
	"github.com/dvillegas/pricepilot-backend/internal/auth"
	"github.com/dvillegas/pricepilot-backend/internal/catalog"
	"github.com/dvillegas/pricepilot-backend/internal/inventory"
	"github.com/dvillegas/pricepilot-backend/internal/shoppinglist"
	"github.com/dvillegas/pricepilot-backend/pkg/auth/session"
	"github.com/dvillegas/pricepilot-backend/pkg/config"
	"github.com/dvillegas/pricepilot-backend/pkg/db"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	"github.com/dvillegas/pricepilot-backend/pkg/logger"
	"github.com/dvillegas/pricepilot-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface: public catalog reads, authenticated
// catalog and ledger mutations gated by role, and the shopping list resolver.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	users middleware.UserVerifier,
	authService auth.Service,
	catalogService catalog.Service,
	inventoryService inventory.Service,
	resolverService shoppinglist.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	authn := middleware.Auth(cfg.JWT, sessions, users, logg)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	readyDeps := map[string]controllers.Pinger{"database": dbP}
	if redisClient != nil {
		readyDeps["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.With(authn).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(catalogService, logg))
		r.Get("/{id}", controllers.GetProduct(catalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.With(middleware.RequireRole(enums.UserRoleVerified, logg)).Post("/", controllers.CreateProduct(catalogService, logg))
			r.With(middleware.RequireRole(enums.UserRoleVerified, logg)).Patch("/{id}", controllers.UpdateProduct(catalogService, logg))
			r.With(middleware.RequireRole(enums.UserRoleAdmin, logg)).Delete("/{id}", controllers.DeleteProduct(catalogService, logg))
		})
	})

	r.Route("/supermarket", func(r chi.Router) {
		r.Use(authn)
		r.Get("/", controllers.ListSupermarkets(catalogService, logg))
		r.Get("/{id}", controllers.GetSupermarket(catalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))
			r.Post("/", controllers.CreateSupermarket(catalogService, logg))
			r.Patch("/{id}", controllers.UpdateSupermarket(catalogService, logg))
			r.Delete("/{id}", controllers.DeleteSupermarket(catalogService, logg))
		})
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/supermarket/{supermarketId}", controllers.ListInventoryBySupermarket(inventoryService, logg))

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/", controllers.ListInventory(inventoryService, logg))
			r.Get("/cheapest/{productId}/{city}", controllers.FindCheapestOffer(inventoryService, logg))
			r.With(middleware.RequireRole(enums.UserRoleVerified, logg)).Get("/category/{city}/{productCategory}", controllers.ListCheapestByCategory(inventoryService, logg))
			r.With(middleware.RequireRole(enums.UserRoleVerified, logg)).Post("/", controllers.UpsertInventoryEntry(inventoryService, logg))
			r.With(middleware.RequireRole(enums.UserRoleVerified, logg)).Patch("/{supermarketId}/{productId}", controllers.UpdateInventoryEntry(inventoryService, logg))
			r.With(middleware.RequireRole(enums.UserRoleAdmin, logg)).Delete("/{supermarketId}/{productId}", controllers.DeleteInventoryEntry(inventoryService, logg))
		})
	})

	r.With(authn).Post("/shoppingList", controllers.ResolveShoppingList(resolverService, logg))

	return r
}
