package executor

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrEmptyCommand = errors.New("command cannot be empty")
)

// CommandExecutionError wraps command failures.
type CommandExecutionError struct {
	Command  []string
	Dir      string
	Output   string
	ExitCode int
	Err      error
}

func (e *CommandExecutionError) Error() string {
	return fmt.Sprintf("executor: command %v failed in %s (exit %d): %v", e.Command, e.Dir, e.ExitCode, e.Err)
}

func (e *CommandExecutionError) Unwrap() error {
	return e.Err
}

// VersionError reports an Ant installation that cannot be used.
type VersionError struct {
	Required string
	Found    string
	Err      error
}

func (e *VersionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("executor: ant version check failed (required %s): %v", e.Required, e.Err)
	}
	return fmt.Sprintf("executor: ant %s does not satisfy %s", e.Found, e.Required)
}

func (e *VersionError) Unwrap() error {
	return e.Err
}

func IsCommandError(err error) bool {
	var target *CommandExecutionError
	return errors.As(err, &target)
}

func IsVersionError(err error) bool {
	var target *VersionError
	return errors.As(err, &target)
}
