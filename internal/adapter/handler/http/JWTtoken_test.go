package http

import (
	"testing"
	"time"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

func testUser(role domain.UserRole) *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Name:  "Ayoub",
		Email: "ayoub@example.com",
		Role:  role,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	service := NewJWTTokenService("test-secret", time.Hour, noopLogger{})
	user := testUser(domain.Client)

	token, err := service.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, payload.UserID)
	assert.Equal(t, domain.Client, payload.Role)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := NewJWTTokenService("issuer-secret", time.Hour, noopLogger{})
	verifier := NewJWTTokenService("other-secret", time.Hour, noopLogger{})

	token, err := issuer.GenerateToken(testUser(domain.Admin))
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	service := NewJWTTokenService("test-secret", time.Hour, noopLogger{})
	expired := &JWTTokenService{
		secretKey: []byte("test-secret"),
		duration:  -time.Hour,
		logger:    noopLogger{},
	}

	token, err := expired.GenerateToken(testUser(domain.Client))
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	service := NewJWTTokenService("test-secret", time.Hour, noopLogger{})

	_, err := service.VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestVerifyTokenUnknownRole(t *testing.T) {
	service := NewJWTTokenService("test-secret", time.Hour, noopLogger{})

	token, err := service.GenerateToken(testUser(domain.UserRole("superuser")))
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

func TestZeroDurationFallsBack(t *testing.T) {
	service := NewJWTTokenService("test-secret", 0, noopLogger{})
	assert.Equal(t, defaultTokenDuration, service.duration)
}
