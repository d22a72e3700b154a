package inventory

import "errors"

// Domain-specific errors for inventory operations.
var (
	// ErrRunNotFound is returned when a run ID does not exist.
	ErrRunNotFound = errors.New("inventory: run not found")

	// ErrRunExists is returned when recording a run whose ID is taken.
	ErrRunExists = errors.New("inventory: run already exists")

	// ErrInvalidRun is returned when a run is missing its ID.
	ErrInvalidRun = errors.New("inventory: invalid run")
)
