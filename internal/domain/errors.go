package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks across package boundaries.
var (
	// ErrInvalidInput marks rejected input at a validation boundary.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBackendUnavailable marks a failed, timed-out, or empty response
	// from the optional text-generation backend. Always recoverable: the
	// caller falls back to deterministic templates.
	ErrBackendUnavailable = errors.New("text generation backend unavailable")
	// ErrMalformedResult marks a prior sentiment analysis that fails its
	// structural contract.
	ErrMalformedResult = errors.New("malformed sentiment result")
)

// ValidationError reports which field of an input failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) succeed.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// BackendError wraps a generative-backend failure with its cause class.
// It is a designed branch, not a caught crash: every BackendError means
// "use the deterministic fallback".
type BackendError struct {
	Op    string // "generate", "health"
	Cause error
}

// NewBackendError builds a BackendError.
func NewBackendError(op string, cause error) *BackendError {
	return &BackendError{Op: op, Cause: cause}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Op, e.Cause)
}

// Unwrap lets errors.Is(err, ErrBackendUnavailable) succeed.
func (e *BackendError) Unwrap() error { return ErrBackendUnavailable }

// MalformedResultError reports a structural defect in a prior analysis.
type MalformedResultError struct {
	Detail string
}

// NewMalformedResultError builds a MalformedResultError.
func NewMalformedResultError(detail string) *MalformedResultError {
	return &MalformedResultError{Detail: detail}
}

func (e *MalformedResultError) Error() string {
	return "malformed sentiment result: " + e.Detail
}

// Unwrap lets errors.Is(err, ErrMalformedResult) succeed.
func (e *MalformedResultError) Unwrap() error { return ErrMalformedResult }
