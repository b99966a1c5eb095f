package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// commandRunner implements CommandRunner using os/exec.
type commandRunner struct{}

// NewCommandRunner creates a CommandRunner that executes processes on the host.
func NewCommandRunner() CommandRunner {
	return &commandRunner{}
}

// Run executes cmd in dir with env layered over the current process environment.
func (r *commandRunner) Run(ctx context.Context, dir string, cmd Command, env map[string]string, timeout time.Duration) (CommandResult, error) {
	result := CommandResult{Command: cmd}
	if strings.TrimSpace(cmd.Name) == "" {
		return result, ErrEmptyCommand
	}

	ctx, cancel := context.WithTimeout(ctx, ValidateTimeout(timeout))
	defer cancel()

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = dir
	c.Env = append(os.Environ(), PrepareEnv(nil, env)...)

	start := time.Now()
	output, err := c.CombinedOutput()
	result.Duration = time.Since(start)
	result.Output = strings.TrimSpace(string(output))

	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return result, &CommandExecutionError{
			Command:  cmd.Argv(),
			Dir:      dir,
			Output:   result.Output,
			ExitCode: result.ExitCode,
			Err:      err,
		}
	}

	return result, nil
}
