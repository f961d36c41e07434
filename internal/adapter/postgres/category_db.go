package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{
		db,
	}
}

func marshalAttributes(attrs map[string]string) ([]byte, error) {
	if attrs == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(attrs)
}

// attributesUpdateParam maps an omitted attributes map to SQL NULL so the
// update's COALESCE keeps the stored value. An explicit empty map clears it.
func attributesUpdateParam(attrs map[string]string) ([]byte, error) {
	if attrs == nil {
		return nil, nil
	}
	return json.Marshal(attrs)
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	attrs, err := marshalAttributes(category.Attributes)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid attributes", domain.ErrInvalidInput)
	}

	query := `INSERT INTO categories (id, name, description, attributes)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		category.ID, category.Name, category.Description, attrs,
	).Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: category already exists", domain.ErrDuplicate)
		}
		return nil, err
	}
	return category, nil
}

func scanCategory(scanner interface{ Scan(...interface{}) error }) (*domain.Category, error) {
	category := &domain.Category{}
	var attrs []byte
	err := scanner.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&attrs,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &category.Attributes); err != nil {
			return nil, fmt.Errorf("decode category attributes: %w", err)
		}
	}
	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT id, name, description, attributes, created_at, updated_at
	          FROM categories WHERE id = $1`

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: category not found", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT id, name, description, attributes, created_at, updated_at
	          FROM categories ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	attrs, err := attributesUpdateParam(category.Attributes)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid attributes", domain.ErrInvalidInput)
	}

	query := `UPDATE categories
		SET
			name = COALESCE(NULLIF($1, ''), name),
			description = COALESCE(NULLIF($2, ''), description),
			attributes = COALESCE($3, attributes),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING id, name, description, attributes, created_at, updated_at`

	updated, err := scanCategory(r.db.QueryRowContext(ctx, query,
		category.Name, category.Description, attrs, category.ID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: category not found", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: category not found", domain.ErrNotFound)
	}
	return nil
}
