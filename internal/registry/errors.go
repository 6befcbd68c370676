package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is against these; the concrete types carry
// the offending field or id and render the message sent to clients.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("student id already exists")
	ErrNotFound   = errors.New("student not found")
)

// ValidationError names the first missing required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation Failed: Missing required field: %s.", e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError is returned when a create reuses an existing id.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Conflict: Student ID %s already exists in the registry.", e.ID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NotFoundError is returned by Get and Delete for an unknown id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Error: Student ID %s not found in the Registry.", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
