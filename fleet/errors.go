/*
errors.go - Error types for the fleet record store

PURPOSE:
  All error types for record validation and state restoration in one place.

ERROR CATEGORIES:
  1. Validation errors - a required field is missing or invalid on
     create/update; the operation aborts with no partial write
  2. Restore errors - a backup document is malformed
  3. Load errors - persisted state is missing or corrupt (recovered by the
     app's fallback chain, never fatal)

Referential gaps are deliberately NOT errors: a dangling foreign key resolves
to a placeholder on read so reports always render.
*/
package fleet

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of every field validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrRecordNotFound is returned by update/delete when the id does not
	// exist in its collection. Read paths never return it.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidBackup is returned when a restore document is missing its
	// version or data section.
	ErrInvalidBackup = errors.New("invalid backup document")

	// ErrInvalidPeriod is returned when a report window is malformed
	// (end before start, or a missing bound).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrNoPersistedState is returned by persisters when no saved state
	// exists yet. The app falls through to the next source.
	ErrNoPersistedState = errors.New("no persisted state")

	// ErrCorruptState is returned by persisters when saved state exists but
	// cannot be decoded.
	ErrCorruptState = errors.New("corrupt persisted state")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError names the offending field. It unwraps to ErrValidation so
// callers can branch on the category without inspecting the message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func required(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}

func mustBePositive(field string) error {
	return &ValidationError{Field: field, Message: "must be greater than zero"}
}
