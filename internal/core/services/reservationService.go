package services

import (
	"context"
	"fmt"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ReservationService orchestrates the reservation lifecycle and keeps the
// paired vehicle availability state consistent. The two writes of a
// create/delete commit inside one repository transaction.
type ReservationService struct {
	reservationRepo ports.ReservationRepository
	logger          ports.LoggerPort
	validate        *validator.Validate
	cache           ports.CachePort
}

func NewReservationService(
	reservationRepo ports.ReservationRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		logger:          logger,
		validate:        validate,
		cache:           cache,
	}
}

func (s *ReservationService) CreateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if err := s.validate.Struct(reservation); err != nil {
		s.logger.Error("Reservation validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !reservation.EndDate.After(reservation.StartDate) {
		s.logger.Warn("Rejected reservation with inverted dates", map[string]interface{}{
			"start_date": reservation.StartDate,
			"end_date":   reservation.EndDate,
		})
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}

	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	reservation.Status = domain.StatusPending
	if reservation.ReturnLocation == "" {
		reservation.ReturnLocation = reservation.PickupLocation
	}

	created, err := s.reservationRepo.CreateReservation(ctx, reservation)
	if err != nil {
		s.logger.Error("Failed to create reservation", map[string]interface{}{
			"error":      err.Error(),
			"client_id":  reservation.ClientID,
			"vehicle_id": reservation.VehicleID,
		})
		return nil, err
	}

	s.invalidateVehicleCache(created.VehicleID)

	s.logger.Info("Reservation created", map[string]interface{}{
		"reservation_id": created.ID,
		"vehicle_id":     created.VehicleID,
		"total_price":    created.TotalPrice,
	})

	return created, nil
}

func (s *ReservationService) GetReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation ID", domain.ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetReservationByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get reservation", map[string]interface{}{
			"error":          err.Error(),
			"reservation_id": reservationID,
		})
		return nil, err
	}
	return reservation, nil
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	return s.reservationRepo.ListReservations(ctx)
}

func (s *ReservationService) ListReservationsByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Reservation, error) {
	return s.reservationRepo.ListReservationsByClient(ctx, clientID)
}

// UpdateStatus moves a reservation through the status machine. It never
// touches vehicle availability: delete is the only restore path (admin
// status edits deliberately do not reconcile the vehicle flag).
func (s *ReservationService) UpdateStatus(ctx context.Context, reservationID string, to domain.Status) (*domain.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation ID", domain.ErrInvalidInput)
	}
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, to)
	}

	reservation, err := s.reservationRepo.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status == to {
		// Idempotent: nothing to persist.
		return reservation, nil
	}
	if !domain.CanTransition(reservation.Status, to) {
		s.logger.Warn("Rejected status transition", map[string]interface{}{
			"reservation_id": reservationID,
			"from":           reservation.Status,
			"to":             to,
		})
		return nil, fmt.Errorf("%w: cannot transition reservation from %s to %s", domain.ErrInvalidState, reservation.Status, to)
	}

	reservation.Status = to
	updated, err := s.reservationRepo.UpdateReservation(ctx, reservation)
	if err != nil {
		s.logger.Error("Failed to update reservation status", map[string]interface{}{
			"error":          err.Error(),
			"reservation_id": reservationID,
		})
		return nil, err
	}

	s.logger.Info("Reservation status updated", map[string]interface{}{
		"reservation_id": reservationID,
		"status":         to,
	})

	return updated, nil
}

// UpdateReservation applies an admin edit. A status change in the edit goes
// through the same transition check as UpdateStatus.
func (s *ReservationService) UpdateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	existing, err := s.reservationRepo.GetReservationByID(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	if reservation.Status != "" && reservation.Status != existing.Status {
		if !reservation.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, reservation.Status)
		}
		if !domain.CanTransition(existing.Status, reservation.Status) {
			return nil, fmt.Errorf("%w: cannot transition reservation from %s to %s", domain.ErrInvalidState, existing.Status, reservation.Status)
		}
	} else {
		reservation.Status = existing.Status
	}

	if !reservation.EndDate.After(reservation.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}

	// A date change reprices the reservation at the vehicle's daily rate
	// (the joined read always carries the vehicle). The stored price is
	// never taken from the caller.
	if !reservation.StartDate.Equal(existing.StartDate) || !reservation.EndDate.Equal(existing.EndDate) {
		reservation.TotalPrice = domain.TotalPrice(existing.Vehicle.PricePerDay, reservation.StartDate, reservation.EndDate)
	} else {
		reservation.TotalPrice = existing.TotalPrice
	}

	updated, err := s.reservationRepo.UpdateReservation(ctx, reservation)
	if err != nil {
		s.logger.Error("Failed to update reservation", map[string]interface{}{
			"error":          err.Error(),
			"reservation_id": reservation.ID,
		})
		return nil, err
	}

	s.logger.Info("Reservation updated", map[string]interface{}{
		"reservation_id": reservation.ID,
	})

	return updated, nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, reservationID string) error {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("%w: invalid reservation ID", domain.ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetReservationByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reservationRepo.DeleteReservation(ctx, id); err != nil {
		s.logger.Error("Failed to delete reservation", map[string]interface{}{
			"error":          err.Error(),
			"reservation_id": reservationID,
		})
		return err
	}

	s.invalidateVehicleCache(reservation.VehicleID)

	s.logger.Info("Reservation deleted, vehicle released", map[string]interface{}{
		"reservation_id": reservationID,
		"vehicle_id":     reservation.VehicleID,
	})

	return nil
}

func (s *ReservationService) invalidateVehicleCache(vehicleID uuid.UUID) {
	cacheKey := fmt.Sprintf("vehicle:%s", vehicleID)
	if err := s.cache.Delete(cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate vehicle cache", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID.String(),
		})
	}
}
