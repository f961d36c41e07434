package domain

import (
	"github.com/google/uuid"
)

// TokenPayload is the verified identity a bearer credential carries.
type TokenPayload struct {
	UserID uuid.UUID
	Role   UserRole
}
