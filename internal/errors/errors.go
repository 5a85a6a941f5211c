// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCardNotFound     = errors.New("card not found")
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrDataNotFound     = errors.New("data not found")
	ErrDatabaseError    = errors.New("database error")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrNoProvider       = errors.New("place provider not configured")
	ErrRateLimited      = errors.New("rate limited")
	ErrTimeout          = errors.New("operation timed out")
)

// StageError represents a failure in a pipeline stage. The orchestrator
// does not catch these; they propagate to the caller.
type StageError struct {
	Stage  string
	UserID string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage [%s] user %s: %v", e.Stage, e.UserID, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(stage, userID string, err error) *StageError {
	return &StageError{
		Stage:  stage,
		UserID: userID,
		Err:    err,
	}
}

// EngineError represents an error from the card-scoring engine.
type EngineError struct {
	Operation string
	Message   string
	Err       error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine error [%s]: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("engine error [%s]: %s", e.Operation, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(operation, message string, err error) *EngineError {
	return &EngineError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// StoreError represents a data persistence error.
type StoreError struct {
	Entity  string
	ID      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store error [%s] %s: %s: %v", e.Entity, e.ID, e.Message, e.Err)
	}
	return fmt.Sprintf("store error [%s] %s: %s", e.Entity, e.ID, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, id, message string, err error) *StoreError {
	return &StoreError{
		Entity:  entity,
		ID:      id,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// PlacesError represents an error from the place-lookup provider.
type PlacesError struct {
	Provider string
	Status   string
	Err      error
}

func (e *PlacesError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("places error [%s] %s: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("places error [%s] %s", e.Provider, e.Status)
}

func (e *PlacesError) Unwrap() error {
	return e.Err
}

// NewPlacesError creates a new PlacesError.
func NewPlacesError(provider, status string, err error) *PlacesError {
	return &PlacesError{
		Provider: provider,
		Status:   status,
		Err:      err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
