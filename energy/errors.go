package energy

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument matches any InvalidArgumentError via errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError is returned when a catalog identifier does not resolve.
type NotFoundError struct {
	Kind string // "activity" or "exercise"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidArgumentError is returned for non-positive or missing numeric inputs
// and for unrecognised enum values.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func invalid(field, reason string) error {
	return &InvalidArgumentError{Field: field, Reason: reason}
}

func requirePositive(field string, v float64) error {
	if !(v > 0) {
		return invalid(field, "must be greater than zero")
	}
	return nil
}
