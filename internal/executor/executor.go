package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/nwdi-cpd/internal/component"
)

// Defaults applied by New when the corresponding option is empty.
const (
	DefaultAntBinary  = "ant"
	DefaultTarget     = "cpd-all"
	DefaultJVMOptions = "-Xmx1024m"
)

// Options configures the Ant based executor.
type Options struct {
	Generator Generator
	Runner    CommandRunner

	AntBinary  string
	Target     string
	JVMOptions string
	// Properties are passed to Ant as -D definitions.
	Properties map[string]string
	// Workspace is the working directory Ant runs in.
	Workspace  string
	ReportPath string
	// MinAntVersion enables the version preflight when set.
	MinAntVersion string
	Timeout       time.Duration

	Logger Logger
}

// New returns an executor that renders the build file and runs Ant against it.
func New(opts Options) (Executor, error) {
	if opts.Generator == nil {
		return nil, fmt.Errorf("executor: generator is required")
	}
	if opts.Runner == nil {
		opts.Runner = NewCommandRunner()
	}
	if opts.AntBinary == "" {
		opts.AntBinary = DefaultAntBinary
	}
	if opts.Target == "" {
		opts.Target = DefaultTarget
	}
	if opts.JVMOptions == "" {
		opts.JVMOptions = DefaultJVMOptions
	}
	return &executor{opts: opts}, nil
}

type executor struct {
	opts Options
}

func (e *executor) Execute(ctx context.Context, components []component.Component) (*Result, error) {
	start := time.Now()
	result := &Result{
		Status:     StatusFailed,
		ReportPath: e.opts.ReportPath,
	}

	before := len(e.opts.Generator.BuildFiles())
	if err := e.opts.Generator.Execute(ctx, components); err != nil {
		e.handleExecutionError(result, err, "build file generation")
		return result, err
	}

	files := e.opts.Generator.BuildFiles()
	if len(files) == before {
		result.Status = StatusSkipped
		result.Reason = "no source folders found"
		result.Duration = time.Since(start)
		e.info("skipping CPD, nothing to analyse", "components", len(components))
		return result, nil
	}
	result.BuildFile = files[len(files)-1]

	if e.opts.MinAntVersion != "" {
		version, err := CheckAntVersion(ctx, e.opts.Runner, e.opts.Workspace, e.opts.AntBinary, e.opts.MinAntVersion)
		if err != nil {
			e.handleExecutionError(result, err, "ant version check")
			return result, err
		}
		e.debug("ant version accepted", "version", version.String(), "required", e.opts.MinAntVersion)
	}

	cmd := e.command(result.BuildFile)
	env := map[string]string{"ANT_OPTS": e.opts.JVMOptions}

	e.info("running ant", "build_file", result.BuildFile, "target", e.opts.Target)
	res, err := e.opts.Runner.Run(ctx, e.opts.Workspace, cmd, env, e.opts.Timeout)
	result.Output = res.Output
	result.Duration = time.Since(start)
	if err != nil {
		e.handleExecutionError(result, err, "ant")
		return result, err
	}

	result.Status = StatusCompleted
	result.Reason = "cpd report written"
	e.info("cpd finished", "report", result.ReportPath, "duration", result.Duration)
	return result, nil
}

func (e *executor) command(buildFile string) Command {
	args := []string{"-f", buildFile}
	args = append(args, propertyArgs(e.opts.Properties)...)
	args = append(args, e.opts.Target)
	return Command{Name: e.opts.AntBinary, Args: args}
}

// handleExecutionError records the failure reason on result.
func (e *executor) handleExecutionError(result *Result, err error, operation string) {
	result.Status = StatusFailed
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		result.Reason = fmt.Sprintf("%s timed out or was canceled: %v", operation, err)
	default:
		result.Reason = fmt.Sprintf("%s failed: %v", operation, err)
	}
	if e.opts.Logger != nil {
		e.opts.Logger.Error("cpd execution failed", "operation", operation, "error", err)
	}
}

func (e *executor) info(msg string, args ...any) {
	if e.opts.Logger != nil {
		e.opts.Logger.Info(msg, args...)
	}
}

func (e *executor) debug(msg string, args ...any) {
	if e.opts.Logger != nil {
		e.opts.Logger.Debug(msg, args...)
	}
}
