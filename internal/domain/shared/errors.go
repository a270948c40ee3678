// Package shared contains common domain types, errors, and events
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")

	// State errors
	ErrInvalidState      = errors.New("invalid state")
	ErrInconsistentState = errors.New("inconsistent state")

	// External service errors
	ErrExternalService    = errors.New("external service error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "profile", "activity", "leaderboard"
	Op      string // Operation that failed, e.g., "Create", "Rank"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Profile domain errors
var (
	ErrProfileNotFound      = NewDomainError("profile", "Find", ErrNotFound, "profile not found")
	ErrProfileAlreadyExists = NewDomainError("profile", "Create", ErrAlreadyExists, "profile already exists")
	ErrInvalidProfileName   = NewDomainError("profile", "Validate", ErrEmptyValue, "profile name is required")
	ErrInvalidProfileAge    = NewDomainError("profile", "Validate", ErrValueOutOfRange, "profile age must be positive")
)

// Team domain errors
var (
	ErrTeamNotFound      = NewDomainError("team", "Find", ErrNotFound, "team not found")
	ErrTeamAlreadyExists = NewDomainError("team", "Create", ErrAlreadyExists, "team name already taken")
	ErrInvalidTeamName   = NewDomainError("team", "Validate", ErrEmptyValue, "team name is required")
)

// Activity domain errors
var (
	ErrActivityNotFound = NewDomainError("activity", "Find", ErrNotFound, "activity not found")
	ErrInvalidDuration  = NewDomainError("activity", "Validate", ErrValueOutOfRange, "duration must be a positive number of minutes")
	ErrInvalidDistance  = NewDomainError("activity", "Validate", ErrNegativeValue, "distance cannot be negative")
	ErrInvalidOwner     = NewDomainError("activity", "Validate", ErrInvalidID, "activity owner is required")
)

// Leaderboard domain errors
var (
	ErrUnknownLeaderboardKind = NewDomainError("leaderboard", "Rank", ErrInvalidInput, "unknown leaderboard kind")
	ErrLeaderboardEmpty       = NewDomainError("leaderboard", "Rank", ErrNotFound, "leaderboard is empty")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange)
}
