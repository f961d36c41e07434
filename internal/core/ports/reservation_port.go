package ports

import (
	"context"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"
	"github.com/google/uuid"
)

// ReservationRepository persists reservations. CreateReservation and
// DeleteReservation are atomic with the paired vehicle availability flip:
// both writes commit together or not at all.
type ReservationRepository interface {
	// CreateReservation locks the vehicle row, verifies it is available,
	// computes the total price from its daily rate, inserts the reservation
	// and marks the vehicle rented, all in one transaction.
	CreateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetReservationByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	ListReservations(ctx context.Context) ([]*domain.Reservation, error)
	ListReservationsByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Reservation, error)
	UpdateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	// DeleteReservation removes the reservation and unconditionally sets its
	// vehicle back to available in the same transaction.
	DeleteReservation(ctx context.Context, id uuid.UUID) error
}
