// Package apperr defines the error kinds shared by the intake services so the
// HTTP layer can tell a bad request from a storage outage without string
// matching.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when an optional integration is not configured.
	ErrUnavailable = errors.New("service unavailable")
	// ErrConflict is returned when a record changed between read and write.
	ErrConflict = errors.New("record was modified concurrently")
)

// ValidationError means caller-supplied data violated a precondition. Message
// is safe to show to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// Validation is a shorthand constructor.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// FieldValidation builds a ValidationError tied to one input field.
func FieldValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a persistence failure. Its text is for logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// NotificationError wraps a failed best-effort side channel (email, staff
// alert). It is logged and never returned to a request caller.
type NotificationError struct {
	Channel string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification via %s: %v", e.Channel, e.Err)
}
func (e *NotificationError) Unwrap() error { return e.Err }

// UpstreamError wraps a failure of a hosted third-party API.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("upstream %s: %v", e.Service, e.Err) }
func (e *UpstreamError) Unwrap() error { return e.Err }

// AsValidation returns the ValidationError in err's chain, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsStorage reports whether err carries a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsUpstream reports whether err carries an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
