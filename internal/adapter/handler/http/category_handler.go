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

type CategoryHandler struct {
	categoryService *services.CategoryService
	logger          ports.LoggerPort
	metrics         ports.MetricsPort
}

func NewCategoryHandler(
	categoryService *services.CategoryService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
		metrics:         metrics,
	}
}

type CategoryRequest struct {
	Name        string            `json:"name" binding:"required" example:"SUV"`
	Description string            `json:"description,omitempty" example:"Sport utility vehicles"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type CategoryResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Count      int                `json:"count"`
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Attributes:  category.Attributes,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// @Summary Create a category
// @Description Add a vehicle category (admin only)
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category data"
// @Success 201 {object} CategoryResponse "Category created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 403 {object} errorResponse "Admin access required"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		Attributes:  req.Attributes,
	}

	created, err := h.categoryService.CreateCategory(c.Request.Context(), category)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCategoryResponse(created))
}

// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} CategoryResponse "Category found"
// @Failure 404 {object} errorResponse "Category not found"
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponse(category))
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} ListCategoriesResponse "All categories"
// @Failure 500 {object} errorResponse "Internal server error"
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	categoryInfos := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		categoryInfos[i] = toCategoryResponse(category)
	}

	c.JSON(http.StatusOK, ListCategoriesResponse{
		Categories: categoryInfos,
		Count:      len(categoryInfos),
	})
}

// @Summary Update a category
// @Description Update category fields (admin only; empty fields keep current values)
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body CategoryRequest true "Fields to update"
// @Success 200 {object} CategoryResponse "Category updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 403 {object} errorResponse "Admin access required"
// @Failure 404 {object} errorResponse "Category not found"
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	category := &domain.Category{
		ID:          categoryID,
		Name:        req.Name,
		Description: req.Description,
		Attributes:  req.Attributes,
	}

	updated, err := h.categoryService.UpdateCategory(c.Request.Context(), category)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponse(updated))
}

// @Summary Delete a category
// @Description Remove a category; vehicles keep running with a null category (admin only)
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} MessageResponse "Category deleted"
// @Failure 403 {object} errorResponse "Admin access required"
// @Failure 404 {object} errorResponse "Category not found"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}
