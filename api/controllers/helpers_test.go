package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dvillegas/pricepilot-backend/api/middleware"
	pkgAuth "github.com/dvillegas/pricepilot-backend/pkg/auth"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
)

func withActor(req *http.Request, role enums.UserRole) *http.Request {
	ctx := middleware.WithIdentity(req.Context(), pkgAuth.Identity{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		Role:   role,
		JTI:    uuid.NewString(),
	})
	return req.WithContext(ctx)
}

func withRouteParams(req *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}
