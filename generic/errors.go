/*
errors.go - Centralized error types for the quota engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The engine has no I/O, so the only failure class is invalid input.
  Configuration stores add not-found errors for the presentation layer.

ERROR CATEGORIES:
  1. Invalid argument - negative counts, malformed dates, zero pace divisor
  2. Not found - holidays and teams referenced by ID
  3. Store errors - database-level failures (wrapped, never classified)

USAGE:
  Callers classify with errors.Is:

    if errors.Is(err, generic.ErrInvalidArgument) {
        // 400 Bad Request
    }

  Nothing here is retryable: the engine fails loudly on the first bad input.

SEE ALSO:
  - projection.go: Rejects a non-positive divisor
  - commission/calculator.go: Rejects negative projections
  - api/handlers.go: Maps these errors to HTTP statuses
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidArgument is the single engine failure kind. Negative counts,
	// malformed dates and an unguarded zero pace divisor all wrap it.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = fmt.Errorf("%w: period end before start", ErrInvalidArgument)

	// ErrHolidayNotFound is returned when a referenced holiday doesn't exist.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrTeamNotFound is returned when a referenced team doesn't exist.
	ErrTeamNotFound = errors.New("team not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidArgumentError names the offending field and value.
type InvalidArgumentError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// NegativeCountError builds the error for a count that must be >= 0.
func NegativeCountError(field string, value any) error {
	return &InvalidArgumentError{Field: field, Value: value, Reason: "must not be negative"}
}

// DuplicateTeamNameError is returned when another team already uses name.
func DuplicateTeamNameError(name string) error {
	return &InvalidArgumentError{Field: "name", Value: name, Reason: "already used by another team"}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrHolidayNotFound) ||
		errors.Is(err, ErrTeamNotFound)
}
