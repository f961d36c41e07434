package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillableDays(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		days  int
	}{
		{"exact three days", base, base.AddDate(0, 0, 3), 3},
		{"started day rounds up", base, base.AddDate(0, 0, 2).Add(time.Hour), 3},
		{"shorter than a day bills one", base, base.Add(2 * time.Hour), 1},
		{"one minute bills one", base, base.Add(time.Minute), 1},
		{"zero period", base, base, 0},
		{"inverted period", base.AddDate(0, 0, 1), base, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.days, BillableDays(tt.start, tt.end))
		})
	}
}

func TestTotalPrice(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 150.0, TotalPrice(50, base, base.AddDate(0, 0, 3)))
	assert.Equal(t, 50.0, TotalPrice(50, base, base.Add(time.Hour)))
	assert.Equal(t, 0.0, TotalPrice(50, base, base))
}
