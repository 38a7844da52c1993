package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it so callers can match
	// either level of detail.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation or violates
	// a constraint before being stored. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrDuplicate is returned when an entity violates a uniqueness
	// constraint, e.g. an explicit primary key collision.
	ErrDuplicate = errors.New("duplicate entity")

	// ErrTransactionFailed is returned when a transaction fails to commit or
	// when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrCityNotFound indicates that the referenced city does not exist.
	ErrCityNotFound = fmt.Errorf("%w: city", ErrNotFound)

	// ErrPointOfInterestNotFound indicates that the referenced point of
	// interest does not exist under the given city.
	ErrPointOfInterestNotFound = fmt.Errorf("%w: point of interest", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
