package controllers

import (
	"net/http"

	"github.com/dvillegas/pricepilot-backend/api/middleware"
	"github.com/dvillegas/pricepilot-backend/api/responses"
	"github.com/dvillegas/pricepilot-backend/api/validators"
	"github.com/dvillegas/pricepilot-backend/internal/shoppinglist"
	pkgerrors "github.com/dvillegas/pricepilot-backend/pkg/errors"
	"github.com/dvillegas/pricepilot-backend/pkg/logger"
)

// ResolveShoppingList prices a submitted list against the cheapest in-city
// offers and returns the itemized result.
func ResolveShoppingList(svc shoppinglist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping list service unavailable"))
			return
		}

		actor, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload shoppinglist.ResolveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Resolve(r.Context(), actor, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
