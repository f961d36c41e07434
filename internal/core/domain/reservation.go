package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	ID              uuid.UUID    `json:"id"`
	ClientID        uuid.UUID    `json:"client_id" validate:"required"`
	VehicleID       uuid.UUID    `json:"vehicle_id" validate:"required"`
	StartDate       time.Time    `json:"start_date" validate:"required"`
	EndDate         time.Time    `json:"end_date" validate:"required"`
	TotalPrice      float64      `json:"total_price"`
	Status          Status       `json:"status"`
	PickupLocation  string       `json:"pickup_location,omitempty"`
	ReturnLocation  string       `json:"return_location,omitempty"`
	DriverAge       *int         `json:"driver_age,omitempty"`
	LicenseNumber   string       `json:"license_number,omitempty"`
	LicenseCountry  string       `json:"license_country,omitempty"`
	SpecialRequests string       `json:"special_requests,omitempty"`
	Client          *UserSummary `json:"client,omitempty"`
	Vehicle         *Vehicle     `json:"vehicle,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// UserSummary is the client projection joined onto reservation reads.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// BillableDays counts the days charged for a rental period, rounding any
// started day up. Periods shorter than a day bill as one day.
func BillableDays(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// TotalPrice computes the rental price for the period at the given daily rate.
func TotalPrice(pricePerDay float64, start, end time.Time) float64 {
	return pricePerDay * float64(BillableDays(start, end))
}
