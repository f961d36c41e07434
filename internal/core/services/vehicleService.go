package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const vehicleCacheTTL = 15 * time.Minute

type VehicleService struct {
	vehicleRepo ports.VehicleRepository
	logger      ports.LoggerPort
	validate    *validator.Validate
	cache       ports.CachePort
}

func NewVehicleService(
	vehicleRepo ports.VehicleRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		logger:      logger,
		validate:    validate,
		cache:       cache,
	}
}

func (s *VehicleService) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle.Status == "" {
		vehicle.Status = domain.Available
	}
	vehicle.PlateNumber = strings.ToUpper(strings.TrimSpace(vehicle.PlateNumber))

	if err := s.validate.Struct(vehicle); err != nil {
		s.logger.Error("Vehicle validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !vehicle.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown availability %q", domain.ErrInvalidInput, vehicle.Status)
	}
	if vehicle.Image == "" {
		return nil, fmt.Errorf("%w: vehicle image is required", domain.ErrInvalidInput)
	}

	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}

	created, err := s.vehicleRepo.CreateVehicle(ctx, vehicle)
	if err != nil {
		s.logger.Error("Failed to create vehicle", map[string]interface{}{
			"error": err.Error(),
			"plate": vehicle.PlateNumber,
		})
		return nil, err
	}

	s.logger.Info("Vehicle created", map[string]interface{}{
		"vehicle_id": created.ID,
		"plate":      created.PlateNumber,
	})

	return created, nil
}

func (s *VehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle ID", domain.ErrInvalidInput)
	}

	cacheKey := fmt.Sprintf("vehicle:%s", vehicleID)
	cachedData, err := s.cache.Get(cacheKey)
	if err == nil {
		var cached domain.Vehicle
		if err := json.Unmarshal(cachedData, &cached); err == nil {
			return &cached, nil
		}
	}

	vehicle, err := s.vehicleRepo.GetVehicleByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		return nil, err
	}

	if data, err := json.Marshal(vehicle); err == nil {
		if err := s.cache.Set(cacheKey, data, vehicleCacheTTL); err != nil {
			s.logger.Warn("Failed to cache vehicle", map[string]interface{}{
				"error":      err.Error(),
				"vehicle_id": vehicleID,
			})
		}
	}

	return vehicle, nil
}

func (s *VehicleService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.ListVehicles(ctx)
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle.Status != "" && !vehicle.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown availability %q", domain.ErrInvalidInput, vehicle.Status)
	}
	if vehicle.PlateNumber != "" {
		vehicle.PlateNumber = strings.ToUpper(strings.TrimSpace(vehicle.PlateNumber))
	}

	updated, err := s.vehicleRepo.UpdateVehicle(ctx, vehicle)
	if err != nil {
		s.logger.Error("Failed to update vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicle.ID,
		})
		return nil, err
	}

	s.invalidateCache(vehicle.ID)

	s.logger.Info("Vehicle updated", map[string]interface{}{
		"vehicle_id": vehicle.ID,
	})

	return updated, nil
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, vehicleID string) error {
	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return fmt.Errorf("%w: invalid vehicle ID", domain.ErrInvalidInput)
	}

	if err := s.vehicleRepo.DeleteVehicle(ctx, id); err != nil {
		s.logger.Error("Failed to delete vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		return err
	}

	s.invalidateCache(id)

	s.logger.Info("Vehicle deleted", map[string]interface{}{
		"vehicle_id": vehicleID,
	})

	return nil
}

func (s *VehicleService) GetVehicleStats(ctx context.Context) (*domain.VehicleStats, error) {
	stats, err := s.vehicleRepo.GetVehicleStats(ctx)
	if err != nil {
		s.logger.Error("Failed to get vehicle stats", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return stats, nil
}

func (s *VehicleService) invalidateCache(id uuid.UUID) {
	cacheKey := fmt.Sprintf("vehicle:%s", id)
	if err := s.cache.Delete(cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate vehicle cache", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id.String(),
		})
	}
}
