package middleware

import (
	"context"

	pkgAuth "github.com/dvillegas/pricepilot-backend/pkg/auth"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	"github.com/google/uuid"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxEmail    contextKey = "user_email"
	ctxRole     contextKey = "actor_role"
	ctxAccessID contextKey = "access_id"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func EmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxEmail).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// WithIdentity injects the resolved caller into the context.
func WithIdentity(ctx context.Context, identity pkgAuth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, identity.UserID.String())
	ctx = context.WithValue(ctx, ctxEmail, identity.Email)
	ctx = context.WithValue(ctx, ctxRole, string(identity.Role))
	return context.WithValue(ctx, ctxAccessID, identity.JTI)
}

// IdentityFromContext rebuilds the caller identity seeded by the Auth middleware.
func IdentityFromContext(ctx context.Context) (pkgAuth.Identity, bool) {
	userID, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		return pkgAuth.Identity{}, false
	}
	role := enums.UserRole(RoleFromContext(ctx))
	if !role.IsValid() {
		return pkgAuth.Identity{}, false
	}
	return pkgAuth.Identity{
		UserID: userID,
		Email:  EmailFromContext(ctx),
		Role:   role,
		JTI:    AccessIDFromContext(ctx),
	}, true
}
