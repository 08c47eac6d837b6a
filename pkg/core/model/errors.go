package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced roster, employee, department, request or alert does not exist
	ErrNotFound = errors.New("not found")

	// ErrNoEmployees is returned when a roster's department and shift has no active employees
	ErrNoEmployees = errors.New("no active employees for department and shift")

	// ErrNotPending is returned when a non-pending day-off request is updated or deleted
	ErrNotPending = errors.New("day-off request is not pending")

	// ErrInvalidLastDayOff is returned when a manually recorded last day off is too old for the roster
	ErrInvalidLastDayOff = errors.New("invalid last day off")
)

// NotFoundError names the missing entity
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFound creates a NotFoundError for the given entity
func NewNotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// BusinessError is a rule violation with a human-readable message.
// Err optionally links the violation to a sentinel error.
type BusinessError struct {
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a BusinessError with no sentinel
func NewBusinessError(message string) error {
	return &BusinessError{Message: message}
}
