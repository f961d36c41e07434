package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{
		db,
	}
}

// CreateReservation inserts the reservation and flips the vehicle to rented
// in one transaction. The vehicle row is locked (FOR UPDATE) before the
// availability check, so two concurrent creates against the same vehicle
// serialize and the loser sees a non-available state.
func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		pricePerDay float64
		status      domain.Availability
	)
	err = tx.QueryRowContext(ctx,
		`SELECT price_per_day, status FROM vehicles WHERE id = $1 FOR UPDATE`,
		reservation.VehicleID,
	).Scan(&pricePerDay, &status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: vehicle not found", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if status != domain.Available {
		return nil, fmt.Errorf("%w: vehicle is not available", domain.ErrInvalidState)
	}

	reservation.TotalPrice = domain.TotalPrice(pricePerDay, reservation.StartDate, reservation.EndDate)

	query := `INSERT INTO reservations
		(id, client_id, vehicle_id, start_date, end_date, total_price, status,
		 pickup_location, return_location, driver_age, license_number, license_country, special_requests)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		reservation.ID, reservation.ClientID, reservation.VehicleID,
		reservation.StartDate, reservation.EndDate, reservation.TotalPrice, reservation.Status,
		reservation.PickupLocation, reservation.ReturnLocation, reservation.DriverAge,
		reservation.LicenseNumber, reservation.LicenseCountry, reservation.SpecialRequests,
	).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503":
				return nil, fmt.Errorf("%w: client not found", domain.ErrNotFound)
			case "23514":
				return nil, fmt.Errorf("%w: invalid reservation dates", domain.ErrInvalidInput)
			}
		}
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE vehicles SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		domain.Rented, reservation.VehicleID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reservation, nil
}

const reservationColumns = `r.id, r.client_id, r.vehicle_id, r.start_date, r.end_date,
	r.total_price, r.status, r.pickup_location, r.return_location, r.driver_age,
	r.license_number, r.license_country, r.special_requests, r.created_at, r.updated_at,
	u.name, u.email,
	v.make, v.model, v.year, v.price_per_day, v.plate_number, v.color, v.image, v.status`

func scanReservation(scanner interface{ Scan(...interface{}) error }) (*domain.Reservation, error) {
	reservation := &domain.Reservation{}
	var (
		driverAge   sql.NullInt64
		clientName  string
		clientEmail string
		vehicle     domain.Vehicle
	)

	err := scanner.Scan(
		&reservation.ID,
		&reservation.ClientID,
		&reservation.VehicleID,
		&reservation.StartDate,
		&reservation.EndDate,
		&reservation.TotalPrice,
		&reservation.Status,
		&reservation.PickupLocation,
		&reservation.ReturnLocation,
		&driverAge,
		&reservation.LicenseNumber,
		&reservation.LicenseCountry,
		&reservation.SpecialRequests,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
		&clientName,
		&clientEmail,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.PricePerDay,
		&vehicle.PlateNumber,
		&vehicle.Color,
		&vehicle.Image,
		&vehicle.Status,
	)
	if err != nil {
		return nil, err
	}

	if driverAge.Valid {
		age := int(driverAge.Int64)
		reservation.DriverAge = &age
	}
	reservation.Client = &domain.UserSummary{
		ID:    reservation.ClientID,
		Name:  clientName,
		Email: clientEmail,
	}
	vehicle.ID = reservation.VehicleID
	reservation.Vehicle = &vehicle
	return reservation, nil
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	          FROM reservations r
	          JOIN users u ON u.id = r.client_id
	          JOIN vehicles v ON v.id = r.vehicle_id
	          WHERE r.id = $1`

	reservation, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: reservation not found", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *ReservationRepository) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	          FROM reservations r
	          JOIN users u ON u.id = r.client_id
	          JOIN vehicles v ON v.id = r.vehicle_id
	          ORDER BY r.created_at DESC`

	return r.queryReservations(ctx, query)
}

func (r *ReservationRepository) ListReservationsByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	          FROM reservations r
	          JOIN users u ON u.id = r.client_id
	          JOIN vehicles v ON v.id = r.vehicle_id
	          WHERE r.client_id = $1
	          ORDER BY r.created_at DESC`

	return r.queryReservations(ctx, query, clientID)
}

func (r *ReservationRepository) queryReservations(ctx context.Context, query string, args ...interface{}) ([]*domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationRepository) UpdateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	query := `UPDATE reservations
		SET start_date = $1, end_date = $2, total_price = $3, status = $4,
		    pickup_location = $5, return_location = $6, driver_age = $7,
		    license_number = $8, license_country = $9, special_requests = $10,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		reservation.StartDate, reservation.EndDate, reservation.TotalPrice, reservation.Status,
		reservation.PickupLocation, reservation.ReturnLocation, reservation.DriverAge,
		reservation.LicenseNumber, reservation.LicenseCountry, reservation.SpecialRequests,
		reservation.ID,
	).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: reservation not found", domain.ErrNotFound)
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			return nil, fmt.Errorf("%w: invalid reservation dates", domain.ErrInvalidInput)
		}
		return nil, err
	}
	return reservation, nil
}

// DeleteReservation removes the reservation and unconditionally releases its
// vehicle back to available, both in one transaction. The model assumes at
// most one active reservation per vehicle, so no overlap check is needed.
func (r *ReservationRepository) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var vehicleID uuid.UUID
	err = tx.QueryRowContext(ctx,
		`DELETE FROM reservations WHERE id = $1 RETURNING vehicle_id`, id,
	).Scan(&vehicleID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: reservation not found", domain.ErrNotFound)
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE vehicles SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		domain.Available, vehicleID,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
