// Package apperr defines the application error taxonomy. The web layer
// translates these into HTTP statuses and the shared JSON envelope; every
// other layer returns them as plain errors.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field path to a human-readable message.
type FieldErrors map[string]string

// Add records a message for a field, keeping the first message when a field
// is reported twice.
func (fe FieldErrors) Add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

// Merge copies all entries of other into fe.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msg := range other {
		fe.Add(field, msg)
	}
}

// NotFoundError indicates a missing entity.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "Not Found"
	}
	return e.Message
}

// NotFound builds a NotFoundError with a default message.
func NotFound(msg string) *NotFoundError {
	return &NotFoundError{Message: msg}
}

// UnauthorizedError indicates a missing, invalid or revoked session token.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "Unauthorized"
	}
	return e.Message
}

// Unauthorized builds an UnauthorizedError.
func Unauthorized(msg string) *UnauthorizedError {
	return &UnauthorizedError{Message: msg}
}

// InvalidRequestError indicates a business-rule violation that is not a
// per-field validation failure.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	if e.Message == "" {
		return "Invalid Request"
	}
	return e.Message
}

// InvalidRequest builds an InvalidRequestError.
func InvalidRequest(msg string) *InvalidRequestError {
	return &InvalidRequestError{Message: msg}
}

// ValidationError carries a field-path-to-message map produced by shape or
// referential validation.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "Bad Request"
	}
	// Deterministic order so the message is stable in logs and reports.
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return strings.Join(parts, "; ")
}

// Validation wraps field errors into a ValidationError. Returns nil when the
// map is empty so callers can return the result directly.
func Validation(fields FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// AsValidation unwraps a ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
