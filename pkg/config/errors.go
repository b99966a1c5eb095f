package config

import (
	"errors"
	"fmt"
)

// FileError wraps failures reading or decoding a configuration file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("config: failed to load %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsFileError returns true if the error is a FileError.
func IsFileError(err error) bool {
	var target *FileError
	return errors.As(err, &target)
}

// IsValidationError returns true if the error reports invalid configuration values.
func IsValidationError(err error) bool {
	var single *ValidationError
	if errors.As(err, &single) {
		return true
	}
	var many ValidationErrors
	return errors.As(err, &many)
}
