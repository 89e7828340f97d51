// Package validation provides input validation for user-supplied paths.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrInvalidSuffix    = errors.New("invalid output suffix")
)

// ValidatePath performs basic validation on a file path.
// Checks for empty paths, excessive length, and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	// Check length
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	// Check for control characters
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}

// ValidateSuffix checks a default-output suffix. It must be non-empty so a
// default output never overwrites its input, and must not contain path
// separators so the output stays next to the input.
func ValidateSuffix(suffix string) error {
	if suffix == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSuffix)
	}
	if strings.ContainsAny(suffix, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidSuffix, suffix)
	}
	if err := ValidatePath(suffix); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSuffix, err)
	}
	return nil
}
