/*
errors.go - Centralized error types for the fiscal engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Regime packages and the API layer wrap these with additional context.

ERROR CATEGORIES:
  1. Regimen errors - Unrecognized fiscal regimen (fail fast, never a
     silent empty result)
  2. Input errors - Out-of-domain numeric inputs caught at the boundary
  3. Store errors - Missing records

USAGE:
  if errors.Is(err, fiscal.ErrInvalidRegimen) {
      // client sent an unknown regimen value
  }
*/
package fiscal

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRegimen is returned when a simulation carries a regimen
	// the engine does not recognize. The computation is aborted rather
	// than producing an empty result.
	ErrInvalidRegimen = errors.New("invalid fiscal regimen")

	// ErrInvalidInput is returned by boundary validation for
	// out-of-domain numeric inputs (negative rent, fiscal year < 1).
	ErrInvalidInput = errors.New("invalid simulation input")

	// ErrInvalidFamily is returned when a regime family is neither
	// nue nor lmnp.
	ErrInvalidFamily = errors.New("invalid regime family")

	// ErrSimulationNotFound is returned when a referenced simulation
	// does not exist in the store.
	ErrSimulationNotFound = errors.New("simulation not found")

	// ErrProjectionNotFound is returned when no projection has been
	// computed for a simulation.
	ErrProjectionNotFound = errors.New("projection not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidRegimenError reports the offending regimen value.
type InvalidRegimenError struct {
	Regimen Regimen
}

func (e *InvalidRegimenError) Error() string {
	return fmt.Sprintf("invalid fiscal regimen %q (want %q or %q)",
		e.Regimen, RegimenForfait, RegimenReel)
}

func (e *InvalidRegimenError) Unwrap() error {
	return ErrInvalidRegimen
}

// InvalidInputError reports which field failed boundary validation and why.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// InvalidFamilyError reports the offending family value.
type InvalidFamilyError struct {
	Family Family
}

func (e *InvalidFamilyError) Error() string {
	return fmt.Sprintf("invalid regime family %q (want %q or %q)",
		e.Family, FamilyNue, FamilyLmnp)
}

func (e *InvalidFamilyError) Unwrap() error {
	return ErrInvalidFamily
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRegimen) ||
		errors.Is(err, ErrInvalidFamily) ||
		errors.Is(err, ErrInvalidInput)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSimulationNotFound) ||
		errors.Is(err, ErrProjectionNotFound)
}
