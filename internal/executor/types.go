package executor

import (
	"context"
	"time"

	"github.com/goliatone/nwdi-cpd/internal/component"
)

// Executor runs the duplicate code detection task for a set of components.
type Executor interface {
	Execute(ctx context.Context, components []component.Component) (*Result, error)
}

// Generator renders the Ant build file the task runs against.
type Generator interface {
	Execute(ctx context.Context, components []component.Component) error
	BuildFiles() []string
}

// CommandRunner defines the interface for executing commands.
type CommandRunner interface {
	Run(ctx context.Context, dir string, cmd Command, env map[string]string, timeout time.Duration) (CommandResult, error)
}

// Logger defines the interface for logging.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Command is a single process invocation.
type Command struct {
	Name string
	Args []string
}

// Argv returns the command name followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// CommandResult represents the outcome of executing a single command.
type CommandResult struct {
	Command  Command
	Output   string
	ExitCode int
	Duration time.Duration
}

// Result represents the outcome of a task execution.
type Result struct {
	Status     Status
	Reason     string
	BuildFile  string
	ReportPath string
	Output     string
	Duration   time.Duration
}

// Status represents the execution status of a task.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)
