// Package errors provides standardized error types and helpers for the u2t codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrSourceUnavailable indicates the source file is missing, unreadable or undecodable
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrDestinationUnavailable indicates the destination cannot be created or written
	ErrDestinationUnavailable = errors.New("destination unavailable")
	// ErrUnsupportedMark indicates a combining mark outside the active mark table
	ErrUnsupportedMark = errors.New("unsupported combining mark")
	// ErrUnsupportedBase indicates a decomposition whose base is not a printable ASCII letter
	ErrUnsupportedBase = errors.New("unsupported base character")
	// ErrNotDecomposable indicates a character without a base+mark canonical decomposition
	ErrNotDecomposable = errors.New("no two-part canonical decomposition")
)

// SourceError represents a failure to open, read or decode a source file.
type SourceError struct {
	Operation string // Operation being performed (e.g., "open", "read", "decode")
	Path      string // Source path
	Err       error  // Underlying error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: failed to %s: %v", e.Path, e.Operation, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}

// DestinationError represents a failure to create, write or replace a destination file.
type DestinationError struct {
	Operation string // Operation being performed (e.g., "create", "write", "replace")
	Path      string // Destination path
	Err       error  // Underlying error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("destination %s: failed to %s: %v", e.Path, e.Operation, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *DestinationError) Unwrap() []error {
	return []error{ErrDestinationUnavailable, e.Err}
}

// CharacterError represents a character that could not be rendered as an accent macro.
type CharacterError struct {
	Rune   rune   // Offending character
	Line   int    // 1-based line number, 0 when unknown
	Reason string // Human-readable detail (e.g., "mark U+0323")
	Err    error  // One of ErrUnsupportedMark, ErrUnsupportedBase, ErrNotDecomposable
}

func (e *CharacterError) Error() string {
	msg := fmt.Sprintf("character %q (U+%04X): %v", e.Rune, e.Rune, e.Err)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *CharacterError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// ParseError represents a parsing error
type ParseError struct {
	Format  string // Format being parsed (e.g., "marks file")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewSource creates a SourceError
func NewSource(operation, path string, err error) *SourceError {
	return &SourceError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewDestination creates a DestinationError
func NewDestination(operation, path string, err error) *DestinationError {
	return &DestinationError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewCharacter creates a CharacterError
func NewCharacter(r rune, err error, reason string) *CharacterError {
	return &CharacterError{
		Rune:   r,
		Reason: reason,
		Err:    err,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
