package ports

import (
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"
)

type TokenService interface {
	GenerateToken(user *domain.User) (string, error)
	VerifyToken(token string) (*domain.TokenPayload, error)
}
