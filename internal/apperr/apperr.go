// Package apperr defines the error taxonomy surfaced by the API layer.
// Validation failures are client-correctable and carry field detail;
// store failures are logged server-side and surfaced generically.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated maps to 401: no valid principal on the request.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotAuthorized maps to 403: a valid principal lacking permission.
	ErrNotAuthorized = errors.New("not authorized")
)

// ValidationError rejects a request before any write happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for a single field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps a row-store failure. The wrapped cause is for server
// logs only and must never be echoed to the client.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError, or returns nil if err is nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
