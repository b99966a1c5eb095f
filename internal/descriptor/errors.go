package descriptor

import (
	"errors"
	"fmt"
)

// TemplateRenderError wraps template parsing or execution failures.
type TemplateRenderError struct {
	TemplateName string
	Operation    string
	Err          error
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("descriptor: template %s %s failed: %v", e.TemplateName, e.Operation, e.Err)
}

func (e *TemplateRenderError) Unwrap() error {
	return e.Err
}

// WriteError wraps failures writing the build file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("descriptor: failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsTemplateRenderError returns true if the error is a TemplateRenderError.
func IsTemplateRenderError(err error) bool {
	var target *TemplateRenderError
	return errors.As(err, &target)
}

// IsWriteError returns true if the error is a WriteError.
func IsWriteError(err error) bool {
	var target *WriteError
	return errors.As(err, &target)
}
