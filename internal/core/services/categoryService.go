package services

import (
	"context"
	"fmt"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CategoryService struct {
	categoryRepo ports.CategoryRepository
	logger       ports.LoggerPort
	validate     *validator.Validate
}

func NewCategoryService(
	categoryRepo ports.CategoryRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
		validate:     validate,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := s.validate.Struct(category); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}

	created, err := s.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		s.logger.Error("Failed to create category", map[string]interface{}{
			"error": err.Error(),
			"name":  category.Name,
		})
		return nil, err
	}

	s.logger.Info("Category created", map[string]interface{}{
		"category_id": created.ID,
	})

	return created, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	id, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category ID", domain.ErrInvalidInput)
	}
	return s.categoryRepo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	updated, err := s.categoryRepo.UpdateCategory(ctx, category)
	if err != nil {
		s.logger.Error("Failed to update category", map[string]interface{}{
			"error":       err.Error(),
			"category_id": category.ID,
		})
		return nil, err
	}
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	id, err := uuid.Parse(categoryID)
	if err != nil {
		return fmt.Errorf("%w: invalid category ID", domain.ErrInvalidInput)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		s.logger.Error("Failed to delete category", map[string]interface{}{
			"error":       err.Error(),
			"category_id": categoryID,
		})
		return err
	}

	s.logger.Info("Category deleted", map[string]interface{}{
		"category_id": categoryID,
	})

	return nil
}
