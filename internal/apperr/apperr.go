// Package apperr defines the tagged domain errors shared by services and
// handlers. Every service operation returns one of these (possibly wrapped)
// so the HTTP layer can map outcomes without string matching.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing input. No side effect occurred.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate marks a uniqueness violation on insert.
	ErrDuplicate = errors.New("duplicate entity")
	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned uniformly for unknown identifier
	// and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotApproved gates dealers whose account is not admin-approved.
	ErrNotApproved = errors.New("account not approved")
	// ErrNotVerified gates dealers with incomplete OTP verification.
	ErrNotVerified = errors.New("verification incomplete")
	// ErrAccountDisabled gates deactivated principals.
	ErrAccountDisabled = errors.New("account is deactivated")
	// ErrAlreadyInState rejects a no-op state reassignment.
	ErrAlreadyInState = errors.New("already in requested state")
	// ErrStaleState marks a conditional update that matched no rows because
	// the entity left the expected pre-state.
	ErrStaleState = errors.New("state changed concurrently")
	// ErrInvalidCode covers wrong and never-issued OTP codes alike.
	ErrInvalidCode = errors.New("invalid code")
	// ErrExpiredCode marks an OTP or reset token past its expiry.
	ErrExpiredCode = errors.New("code expired")
	// ErrDeliveryFailed marks a notification dispatch failure.
	ErrDeliveryFailed = errors.New("delivery failed")
	// ErrForbidden marks an operation the principal may not perform.
	ErrForbidden = errors.New("forbidden")
)

// Validation wraps ErrValidation with a human-readable reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// DuplicateError reports which unique field collided. Registration is
// allowed to disclose the field; login errors stay uniform.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return ErrDuplicate.Error()
	}
	return fmt.Sprintf("duplicate %s", e.Field)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// Duplicate builds a DuplicateError for the given field.
func Duplicate(field string) error {
	return &DuplicateError{Field: field}
}

// DuplicateField extracts the conflicting field name, if err is a
// duplicate error.
func DuplicateField(err error) (string, bool) {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Field, true
	}
	return "", false
}
