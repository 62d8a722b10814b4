package auth

import (
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	"github.com/google/uuid"
)

// Identity is the resolved caller attached to a request after the bearer
// token has been verified.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   enums.UserRole
	JTI    string
}
