package ports

import (
	"context"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"
	"github.com/google/uuid"
)

type VehicleRepository interface {
	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
	GetVehicleStats(ctx context.Context) (*domain.VehicleStats, error)
}
