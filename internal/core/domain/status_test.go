package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusValidated.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("unknown").Valid())
	assert.False(t, Status("").Valid())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to validated", StatusPending, StatusValidated, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to in_progress skips validation", StatusPending, StatusInProgress, false},
		{"pending to completed skips everything", StatusPending, StatusCompleted, false},
		{"validated to in_progress", StatusValidated, StatusInProgress, true},
		{"validated to cancelled", StatusValidated, StatusCancelled, true},
		{"validated back to pending", StatusValidated, StatusPending, false},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, true},
		{"completed is terminal", StatusCompleted, StatusPending, false},
		{"completed to cancelled", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusValidated, false},
		{"unknown source", Status("unknown"), StatusPending, false},
		{"unknown target", StatusPending, Status("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransitionSameStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusValidated, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, CanTransition(s, s), "same-status update must stay allowed for %s", s)
	}
	assert.False(t, CanTransition(Status("unknown"), Status("unknown")))
}
