package domain

import (
	"errors"
	"fmt"
)

// Common error types
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// NewNotFoundError creates a not found error for entity/id
func NewNotFoundError(entity, id string) error {
	return &ErrNotFound{Entity: entity, ID: id}
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// InsufficientDataError is returned when an import source has no data rows
type InsufficientDataError struct {
	Message string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap lets errors.As match it as a ValidationError
func (e *InsufficientDataError) Unwrap() error {
	return ValidationError{Message: e.Message}
}

// FetchError is returned when a remote import source cannot be read.
// Message is meant for the end user, Err carries the cause for logs.
type FetchError struct {
	Source  string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.Source, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TooLargeError is returned when an upload exceeds the configured bound
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file must be under %s", formatBytes(e.Limit))
}

// ConfigurationError signals a programming or data error, such as a section
// whose variant is not registered. It is never the user's fault.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError is returned when a write lost a race with another write to
// the same entity. Reloading and retrying resolves it.
type ConflictError struct {
	Entity string
	ID     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently, reload and retry", e.Entity, e.ID)
}

// IsConflict reports whether err is, or wraps, a ConflictError
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// HandOffError is returned when a batch hand-off produced no page at all
type HandOffError struct {
	Failed int
}

func (e *HandOffError) Error() string {
	return fmt.Sprintf("no pages could be generated: %d records failed", e.Failed)
}

// TransitionError is returned when an import step is requested from a step that does not allow it
type TransitionError struct {
	From   ImportStep
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while in step %s", e.Action, e.From)
}

// IsValidationError reports whether err is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is, or wraps, an ErrNotFound
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}

func formatBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	if n >= 1024 && n%1024 == 0 {
		return fmt.Sprintf("%dKB", n/1024)
	}
	return fmt.Sprintf("%d bytes", n)
}
