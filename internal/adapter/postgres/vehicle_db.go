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

type VehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{
		db,
	}
}

func (r *VehicleRepository) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `INSERT INTO vehicles (id, make, model, year, price_per_day, plate_number, color, category_id, image, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		vehicle.ID, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.PricePerDay,
		vehicle.PlateNumber, vehicle.Color, vehicle.CategoryID, vehicle.Image, vehicle.Status,
	).Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return nil, fmt.Errorf("%w: plate number already exists", domain.ErrDuplicate)
			case "23503":
				return nil, fmt.Errorf("%w: category not found", domain.ErrNotFound)
			case "23502":
				return nil, fmt.Errorf("%w: required field is missing", domain.ErrInvalidInput)
			}
		}
		return nil, err
	}
	return vehicle, nil
}

const vehicleColumns = `v.id, v.make, v.model, v.year, v.price_per_day, v.plate_number,
	v.color, v.category_id, v.image, v.status, v.created_at, v.updated_at,
	c.id, c.name, c.description, c.attributes, c.created_at, c.updated_at`

func scanVehicle(scanner interface{ Scan(...interface{}) error }) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{}
	var (
		categoryID    uuid.NullUUID
		catID         uuid.NullUUID
		catName       sql.NullString
		catDesc       sql.NullString
		catAttributes []byte
		catCreated    sql.NullTime
		catUpdated    sql.NullTime
	)

	err := scanner.Scan(
		&vehicle.ID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.PricePerDay,
		&vehicle.PlateNumber,
		&vehicle.Color,
		&categoryID,
		&vehicle.Image,
		&vehicle.Status,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
		&catID,
		&catName,
		&catDesc,
		&catAttributes,
		&catCreated,
		&catUpdated,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		vehicle.CategoryID = &categoryID.UUID
	}
	if catID.Valid {
		category := &domain.Category{
			ID:          catID.UUID,
			Name:        catName.String,
			Description: catDesc.String,
			CreatedAt:   catCreated.Time,
			UpdatedAt:   catUpdated.Time,
		}
		if len(catAttributes) > 0 {
			_ = json.Unmarshal(catAttributes, &category.Attributes)
		}
		vehicle.Category = category
	}
	return vehicle, nil
}

func (r *VehicleRepository) GetVehicleByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + `
	          FROM vehicles v
	          LEFT JOIN categories c ON c.id = v.category_id
	          WHERE v.id = $1`

	vehicle, err := scanVehicle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: vehicle not found", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *VehicleRepository) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + `
	          FROM vehicles v
	          LEFT JOIN categories c ON c.id = v.category_id
	          ORDER BY v.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `UPDATE vehicles
		SET
			make = COALESCE(NULLIF($1, ''), make),
			model = COALESCE(NULLIF($2, ''), model),
			year = COALESCE(NULLIF($3, 0), year),
			price_per_day = COALESCE(NULLIF($4, 0::numeric), price_per_day),
			plate_number = COALESCE(NULLIF($5, ''), plate_number),
			color = COALESCE(NULLIF($6, ''), color),
			category_id = COALESCE($7, category_id),
			image = COALESCE(NULLIF($8, ''), image),
			status = COALESCE(NULLIF($9, ''), status),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING id, make, model, year, price_per_day, plate_number, color, category_id, image, status, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		vehicle.Make, vehicle.Model, vehicle.Year, vehicle.PricePerDay,
		vehicle.PlateNumber, vehicle.Color, vehicle.CategoryID, vehicle.Image,
		string(vehicle.Status), vehicle.ID,
	)
	var categoryID uuid.NullUUID
	err := row.Scan(
		&vehicle.ID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.PricePerDay,
		&vehicle.PlateNumber,
		&vehicle.Color,
		&categoryID,
		&vehicle.Image,
		&vehicle.Status,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if categoryID.Valid {
		vehicle.CategoryID = &categoryID.UUID
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: vehicle not found", domain.ErrNotFound)
		}
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return nil, fmt.Errorf("%w: plate number already exists", domain.ErrDuplicate)
			case "23503":
				return nil, fmt.Errorf("%w: category not found", domain.ErrNotFound)
			}
		}
		return nil, fmt.Errorf("error updating vehicle: %w", err)
	}
	return vehicle, nil
}

func (r *VehicleRepository) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM vehicles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: vehicle not found", domain.ErrNotFound)
	}
	return nil
}

func (r *VehicleRepository) GetVehicleStats(ctx context.Context) (*domain.VehicleStats, error) {
	query := `SELECT status, COUNT(*) FROM vehicles GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.VehicleStats{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch domain.Availability(status) {
		case domain.Available:
			stats.Available = count
		case domain.Rented:
			stats.Rented = count
		case domain.Maintenance:
			stats.Maintenance = count
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
