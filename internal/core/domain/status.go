package domain

// Status is the lifecycle stage of a reservation (persisted as a string).
type Status string

const (
	StatusPending    Status = "pending"
	StatusValidated  Status = "validated"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// allowedTransitions is the reservation status machine as a directed graph.
// completed and cancelled are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusValidated, StatusCancelled},
	StatusValidated:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed status change.
// A same-status update is always allowed so repeated updates stay idempotent.
func CanTransition(from, to Status) bool {
	if from == to {
		return from.Valid()
	}
	allowed, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
