package repositories

import "errors"

// Shared repository errors. Services translate these into request errors
// with domain-specific messages.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate is returned on a unique constraint violation.
	ErrDuplicate = errors.New("resource already exists")
)
