package http

import (
	"net/http"
	"time"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/ports"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	userService  *services.UserService
	tokenService ports.TokenService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

func NewAuthHandler(
	userService *services.UserService,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		logger:       logger,
		metrics:      metrics,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Ayoub Essarghini"`
	Email    string `json:"email" binding:"required,email" example:"ayoub@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Role     string `json:"role,omitempty" example:"client"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ayoub@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty" example:"Ayoub Essarghini"`
	Email      *string `json:"email,omitempty" example:"ayoub@example.com"`
	Phone      *string `json:"phone,omitempty" example:"+212600000000"`
	Department *string `json:"department,omitempty" example:"Operations"`
	Avatar     *string `json:"avatar,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty" example:"admin"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Phone      string    `json:"phone,omitempty"`
	Department string    `json:"department,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		Phone:      user.Phone,
		Department: user.Department,
		Avatar:     user.Avatar,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// @Summary Register a new user
// @Description Create an account and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse "Account created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in register", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Name, req.Email, req.Password, domain.UserRole(req.Role))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	token, err := h.tokenService.GenerateToken(user)
	if err != nil {
		h.logger.Error("Failed to generate token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// @Summary Log in
// @Description Authenticate with email and password, return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse "Authenticated"
// @Failure 401 {object} errorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	token, err := h.tokenService.GenerateToken(user)
	if err != nil {
		h.logger.Error("Failed to generate token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// @Summary Get a user
// @Description Get a user by ID. Clients may only read their own account.
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse "User found"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "User not found"
// @Router /auth/{id} [get]
func (h *AuthHandler) GetUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	userID := c.Param("id")

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if payload.Role != domain.Admin && payload.UserID.String() != userID {
		h.logger.Warn("Access denied to user account", map[string]interface{}{
			"requester_id": payload.UserID.String(),
			"target_id":    userID,
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// @Summary List users
// @Description List all accounts (admin only)
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ListUsersResponse "All users"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 403 {object} errorResponse "Admin access required"
// @Router /auth [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list users", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	userInfos := make([]UserResponse, len(users))
	for i, user := range users {
		userInfos[i] = toUserResponse(user)
	}

	c.JSON(http.StatusOK, ListUsersResponse{
		Users: userInfos,
		Count: len(userInfos),
	})
}

// @Summary Update profile
// @Description Update own profile fields. Clients may only edit their own account.
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} UserResponse "Profile updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /auth/profile/{id} [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	userID := c.Param("id")

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if payload.Role != domain.Admin && payload.UserID.String() != userID {
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, services.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Avatar:     req.Avatar,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// @Summary Change password
// @Description Change own password, verifying the current one
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} MessageResponse "Password changed"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /auth/password/{id} [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	userID := c.Param("id")

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if payload.UserID.String() != userID {
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

// @Summary Update a user
// @Description Update name, email or role of any account (admin only)
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} UserResponse "User updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 403 {object} errorResponse "Admin access required"
// @Failure 404 {object} errorResponse "User not found"
// @Router /auth/{id} [put]
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	userID := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req.Name, req.Email, domain.UserRole(req.Role))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// @Summary Delete a user
// @Description Delete any account (admin only)
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse "User deleted"
// @Failure 403 {object} errorResponse "Admin access required"
// @Failure 404 {object} errorResponse "User not found"
// @Router /auth/{id} [delete]
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	userID := c.Param("id")

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
