package domain

import "errors"

// Sentinel errors shared by services and repositories. Handlers translate
// them to HTTP statuses with errors.Is.
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrDuplicate    = errors.New("duplicate value")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
