package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

type memCache struct {
	store map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{store: map[string][]byte{}}
}

func (c *memCache) Get(key string) ([]byte, error) {
	value, ok := c.store[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return value, nil
}

func (c *memCache) Set(key string, value []byte, _ time.Duration) error {
	c.store[key] = value
	return nil
}

func (c *memCache) Delete(key string) error {
	delete(c.store, key)
	return nil
}

// fakeReservationRepo mimics the transactional repository: create checks the
// vehicle state and flips it to rented, delete flips it back.
type fakeReservationRepo struct {
	reservations  map[uuid.UUID]*domain.Reservation
	vehicleStatus domain.Availability
	pricePerDay   float64
	updateCalls   int
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations:  map[uuid.UUID]*domain.Reservation{},
		vehicleStatus: domain.Available,
		pricePerDay:   100,
	}
}

func (r *fakeReservationRepo) CreateReservation(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if r.vehicleStatus != domain.Available {
		return nil, fmt.Errorf("%w: vehicle is not available", domain.ErrInvalidState)
	}
	reservation.TotalPrice = domain.TotalPrice(r.pricePerDay, reservation.StartDate, reservation.EndDate)
	stored := *reservation
	r.reservations[reservation.ID] = &stored
	r.vehicleStatus = domain.Rented
	return reservation, nil
}

func (r *fakeReservationRepo) GetReservationByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	reservation, ok := r.reservations[id]
	if !ok {
		return nil, fmt.Errorf("%w: reservation not found", domain.ErrNotFound)
	}
	copied := *reservation
	// Reads join the vehicle, so the copy carries its current rate.
	copied.Vehicle = &domain.Vehicle{
		ID:          reservation.VehicleID,
		PricePerDay: r.pricePerDay,
		Status:      r.vehicleStatus,
	}
	return &copied, nil
}

func (r *fakeReservationRepo) ListReservations(_ context.Context) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, reservation := range r.reservations {
		out = append(out, reservation)
	}
	return out, nil
}

func (r *fakeReservationRepo) ListReservationsByClient(_ context.Context, clientID uuid.UUID) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, reservation := range r.reservations {
		if reservation.ClientID == clientID {
			out = append(out, reservation)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) UpdateReservation(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if _, ok := r.reservations[reservation.ID]; !ok {
		return nil, fmt.Errorf("%w: reservation not found", domain.ErrNotFound)
	}
	r.updateCalls++
	stored := *reservation
	r.reservations[reservation.ID] = &stored
	return reservation, nil
}

func (r *fakeReservationRepo) DeleteReservation(_ context.Context, id uuid.UUID) error {
	if _, ok := r.reservations[id]; !ok {
		return fmt.Errorf("%w: reservation not found", domain.ErrNotFound)
	}
	delete(r.reservations, id)
	r.vehicleStatus = domain.Available
	return nil
}

func newTestReservationService(repo *fakeReservationRepo, cache *memCache) *ReservationService {
	return NewReservationService(repo, noopLogger{}, validator.New(), cache)
}

func validReservation() *domain.Reservation {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ClientID:       uuid.New(),
		VehicleID:      uuid.New(),
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 3),
		PickupLocation: "Casablanca Airport",
	}
}

func TestCreateReservationDefaults(t *testing.T) {
	repo := newFakeReservationRepo()
	service := newTestReservationService(repo, newMemCache())

	created, err := service.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "Casablanca Airport", created.ReturnLocation, "return location defaults to pickup")
	assert.Equal(t, 300.0, created.TotalPrice, "3 days at the vehicle's daily rate")
	assert.Equal(t, domain.Rented, repo.vehicleStatus)
}

func TestCreateReservationInvertedDates(t *testing.T) {
	repo := newFakeReservationRepo()
	service := newTestReservationService(repo, newMemCache())

	reservation := validReservation()
	reservation.StartDate, reservation.EndDate = reservation.EndDate, reservation.StartDate

	_, err := service.CreateReservation(context.Background(), reservation)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.reservations)
}

func TestCreateReservationEqualDates(t *testing.T) {
	repo := newFakeReservationRepo()
	service := newTestReservationService(repo, newMemCache())

	reservation := validReservation()
	reservation.EndDate = reservation.StartDate

	_, err := service.CreateReservation(context.Background(), reservation)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateReservationVehicleUnavailable(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.vehicleStatus = domain.Maintenance
	service := newTestReservationService(repo, newMemCache())

	_, err := service.CreateReservation(context.Background(), validReservation())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, repo.reservations, "nothing persisted on rejection")
}

func TestCreateReservationInvalidatesVehicleCache(t *testing.T) {
	repo := newFakeReservationRepo()
	cache := newMemCache()
	service := newTestReservationService(repo, cache)

	reservation := validReservation()
	cacheKey := fmt.Sprintf("vehicle:%s", reservation.VehicleID)
	require.NoError(t, cache.Set(cacheKey, []byte("stale"), time.Minute))

	_, err := service.CreateReservation(context.Background(), reservation)
	require.NoError(t, err)

	_, err = cache.Get(cacheKey)
	assert.Error(t, err, "stale vehicle entry must be evicted")
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.Status
		to      domain.Status
		wantErr error
	}{
		{"pending to validated", domain.StatusPending, domain.StatusValidated, nil},
		{"validated to in_progress", domain.StatusValidated, domain.StatusInProgress, nil},
		{"in_progress to completed", domain.StatusInProgress, domain.StatusCompleted, nil},
		{"pending to completed", domain.StatusPending, domain.StatusCompleted, domain.ErrInvalidState},
		{"completed to pending", domain.StatusCompleted, domain.StatusPending, domain.ErrInvalidState},
		{"cancelled to validated", domain.StatusCancelled, domain.StatusValidated, domain.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeReservationRepo()
			service := newTestReservationService(repo, newMemCache())

			created, err := service.CreateReservation(context.Background(), validReservation())
			require.NoError(t, err)
			repo.reservations[created.ID].Status = tt.from

			updated, err := service.UpdateStatus(context.Background(), created.ID.String(), tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.reservations[created.ID].Status, "rejected transition must not persist")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
		})
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	repo := newFakeReservationRepo()
	service := newTestReservationService(repo, newMemCache())

	created, err := service.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)

	updated, err := service.UpdateStatus(context.Background(), created.ID.String(), domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)
	assert.Zero(t, repo.updateCalls, "same-status update must not write")
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	repo := newFakeReservationRepo()
	service := newTestReservationService(repo, newMemCache())

	created, err := service.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)

	_, err = service.UpdateStatus(context.Background(), created.ID.String(), domain.Status("shipped"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatusUnknownReservation(t *testing.T) {
	service := newTestReservationService(newFakeReservationRepo(), newMemCache())

	_, err := service.UpdateStatus(context.Background(), uuid.NewString(), domain.StatusValidated)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteReservationReleasesVehicle(t *testing.T) {
	repo := newFakeReservationRepo()
	cache := newMemCache()
	service := newTestReservationService(repo, cache)

	created, err := service.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)
	require.Equal(t, domain.Rented, repo.vehicleStatus)

	cacheKey := fmt.Sprintf("vehicle:%s", created.VehicleID)
	require.NoError(t, cache.Set(cacheKey, []byte("stale"), time.Minute))

	require.NoError(t, service.DeleteReservation(context.Background(), created.ID.String()))

	assert.Empty(t, repo.reservations)
	assert.Equal(t, domain.Available, repo.vehicleStatus, "delete restores the vehicle")
	_, err = cache.Get(cacheKey)
	assert.Error(t, err)
}

func TestDeleteReservationNotFound(t *testing.T) {
	service := newTestReservationService(newFakeReservationRepo(), newMemCache())

	err := service.DeleteReservation(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReservationRepricesOnDateChange(t *testing.T) {
	repo := newFakeReservationRepo()
	service := newTestReservationService(repo, newMemCache())

	created, err := service.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)
	require.Equal(t, 300.0, created.TotalPrice, "3 days at 100/day")

	edit := *created
	edit.EndDate = edit.StartDate.AddDate(0, 0, 7)

	updated, err := service.UpdateReservation(context.Background(), &edit)
	require.NoError(t, err)
	assert.Equal(t, 700.0, updated.TotalPrice, "price tracks the edited period")
	assert.Equal(t, 700.0, repo.reservations[created.ID].TotalPrice)
}

func TestUpdateReservationKeepsPriceWhenDatesUnchanged(t *testing.T) {
	repo := newFakeReservationRepo()
	service := newTestReservationService(repo, newMemCache())

	created, err := service.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)

	// A later rate change must not reprice an edit that leaves dates alone.
	repo.pricePerDay = 250

	edit := *created
	edit.SpecialRequests = "child seat"

	updated, err := service.UpdateReservation(context.Background(), &edit)
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.TotalPrice)
}

func TestUpdateReservationRejectsBadTransition(t *testing.T) {
	repo := newFakeReservationRepo()
	service := newTestReservationService(repo, newMemCache())

	created, err := service.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)

	edit := *created
	edit.Status = domain.StatusCompleted

	_, err = service.UpdateReservation(context.Background(), &edit)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestListReservationsByClientScopes(t *testing.T) {
	repo := newFakeReservationRepo()
	service := newTestReservationService(repo, newMemCache())

	first, err := service.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)

	repo.vehicleStatus = domain.Available
	second := validReservation()
	_, err = service.CreateReservation(context.Background(), second)
	require.NoError(t, err)

	mine, err := service.ListReservationsByClient(context.Background(), first.ClientID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	all, err := service.ListReservations(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
