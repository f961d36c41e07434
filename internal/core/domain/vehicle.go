package domain

import (
	"time"

	"github.com/google/uuid"
)

// Availability is the vehicle's current rental eligibility flag. It is
// mutated only by the reservation lifecycle (create/delete) or by a direct
// admin edit, never inferred from reservation date ranges.
type Availability string

const (
	Available   Availability = "available"
	Rented      Availability = "rented"
	Maintenance Availability = "maintenance"
)

func (a Availability) Valid() bool {
	return a == Available || a == Rented || a == Maintenance
}

type Vehicle struct {
	ID          uuid.UUID    `json:"id"`
	Make        string       `json:"make" validate:"required,max=100"`
	Model       string       `json:"model" validate:"required,max=100"`
	Year        int          `json:"year" validate:"required,min=1950,max=2100"`
	PricePerDay float64      `json:"price_per_day" validate:"required,gt=0"`
	PlateNumber string       `json:"plate_number" validate:"required,max=32"`
	Color       string       `json:"color" validate:"required,max=50"`
	CategoryID  *uuid.UUID   `json:"category_id,omitempty"`
	Image       string       `json:"image,omitempty"`
	Status      Availability `json:"status" validate:"required"`
	Category    *Category    `json:"category,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// VehicleStats is the per-availability breakdown served by /vehicles/stats.
type VehicleStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Rented      int `json:"rented"`
	Maintenance int `json:"maintenance"`
}
