package component

import (
	"errors"
	"fmt"
	"strings"
)

// LoadError represents an error that occurred while reading a development configuration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("component: failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError represents an error that occurred during YAML parsing.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("component: failed to parse YAML from %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError aggregates multiple validation issues.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("component: validation failed: %s", e.Issues[0])
	}
	return fmt.Sprintf("component: validation failed with %d issues:\n- %s", len(e.Issues), strings.Join(e.Issues, "\n- "))
}

// IsLoadError returns true if the error is a LoadError.
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// GetValidationIssues extracts the validation issues from a ValidationError.
func GetValidationIssues(err error) ([]string, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Issues, true
	}
	return nil, false
}
