package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *JWTTokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenService := NewJWTTokenService("test-secret", time.Hour, noopLogger{})

	router := gin.New()
	protected := router.Group("/protected")
	protected.Use(AuthMiddleware(tokenService))
	protected.GET("", func(c *gin.Context) {
		payload, exists := getAuthPayload(c, authorizationPayloadKey)
		require.True(t, exists)
		c.JSON(http.StatusOK, gin.H{"user_id": payload.UserID.String(), "role": string(payload.Role)})
	})

	admin := router.Group("/admin")
	admin.Use(AuthMiddleware(tokenService), RequireAdmin())
	admin.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router, tokenService
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "msg")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router, tokenService := newAuthTestRouter(t)

	token, err := tokenService.GenerateToken(testUser(domain.Client))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing scheme", token},
		{"wrong scheme", "Basic " + token},
		{"extra fields", "Bearer " + token + " extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddlewareForgedToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)
	forger := NewJWTTokenService("wrong-secret", time.Hour, noopLogger{})

	token, err := forger.GenerateToken(testUser(domain.Admin))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router, tokenService := newAuthTestRouter(t)
	user := testUser(domain.Client)

	token, err := tokenService.GenerateToken(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
}

func TestRequireAdminRejectsClient(t *testing.T) {
	router, tokenService := newAuthTestRouter(t)

	token, err := tokenService.GenerateToken(testUser(domain.Client))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	router, tokenService := newAuthTestRouter(t)

	token, err := tokenService.GenerateToken(testUser(domain.Admin))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
