// Package buildstep is the per-build entry point that runs duplicate code detection over the
// source components of an NWDI development configuration.
package buildstep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/goliatone/nwdi-cpd/internal/changes"
	"github.com/goliatone/nwdi-cpd/internal/component"
	"github.com/goliatone/nwdi-cpd/internal/executor"
)

const (
	// DisplayName is shown to users of the host build system.
	DisplayName = "NWDI CPD Builder"
	// ProjectTypeNWDI is the only project type the step applies to.
	ProjectTypeNWDI = "nwdi"
	// DefaultResultDir is the workspace relative folder receiving the CPD report.
	DefaultResultDir = "cpd"
)

// Logger defines the interface for logging.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Build describes a single build the step runs for.
type Build struct {
	ID            string
	Workspace     string
	Configuration *component.DevelopmentConfiguration
	ProjectType   string
}

// ExecutorFactory creates the task executor for a build.
type ExecutorFactory func(build Build) (executor.Executor, error)

// Options configures a Step.
type Options struct {
	RunCPD bool
	// ChangedSince limits the analysis to components changed since this revision.
	ChangedSince string
	// RepoDir is the repository the ChangedSince revision is resolved in. Defaults to the workspace.
	RepoDir   string
	ResultDir string

	NewExecutor ExecutorFactory
	Detector    changes.Detector
	Fs          afero.Fs
	Logger      Logger
}

// Step runs CPD for a build.
type Step struct {
	opts Options
}

// ResultFolderError reports a CPD result folder that could not be created.
type ResultFolderError struct {
	Path string
	Err  error
}

func (e *ResultFolderError) Error() string {
	return fmt.Sprintf("buildstep: can't create CPD result folder %s: %v", e.Path, e.Err)
}

func (e *ResultFolderError) Unwrap() error {
	return e.Err
}

// IsResultFolderError returns true if the error is a ResultFolderError.
func IsResultFolderError(err error) bool {
	var target *ResultFolderError
	return errors.As(err, &target)
}

// New creates a Step.
func New(opts Options) (*Step, error) {
	if opts.NewExecutor == nil {
		return nil, fmt.Errorf("buildstep: executor factory is required")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.ResultDir == "" {
		opts.ResultDir = DefaultResultDir
	}
	if opts.ChangedSince != "" && opts.Detector == nil {
		opts.Detector = changes.NewDetector()
	}
	return &Step{opts: opts}, nil
}

// DisplayName returns the human readable name of the step.
func (s *Step) DisplayName() string {
	return DisplayName
}

// Applicable reports whether the step can run for projects of the given type.
func (s *Step) Applicable(projectType string) bool {
	return projectType == ProjectTypeNWDI
}

// RunCPD reports whether the step is enabled.
func (s *Step) RunCPD() bool {
	return s.opts.RunCPD
}

// Perform runs the step and returns whether the build may continue. A result folder that
// can't be created yields false with a message on listener; other failures are returned.
func (s *Step) Perform(ctx context.Context, build Build, listener io.Writer) (bool, error) {
	if _, err := s.Run(ctx, build, listener); err != nil {
		if IsResultFolderError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Run executes CPD for build and returns the executor result. Once "Running CPD..." is
// written the timing line follows, whether or not the run succeeds.
func (s *Step) Run(ctx context.Context, build Build, listener io.Writer) (*executor.Result, error) {
	if listener == nil {
		listener = io.Discard
	}
	if !s.opts.RunCPD {
		return &executor.Result{Status: executor.StatusSkipped, Reason: "cpd disabled"}, nil
	}
	if build.ID == "" {
		build.ID = uuid.NewString()
	}

	resultDir := ResultFolder(build.Workspace, s.opts.ResultDir)
	if err := s.opts.Fs.MkdirAll(resultDir, 0o755); err != nil {
		abs := resultDir
		if p, absErr := filepath.Abs(resultDir); absErr == nil {
			abs = p
		}
		fmt.Fprintf(listener, "Can't create CPD result folder ('%s')!\n", abs)
		s.logError("can't create CPD result folder", "build", build.ID, "path", abs, "error", err)
		return nil, &ResultFolderError{Path: abs, Err: err}
	}

	fmt.Fprint(listener, "Running CPD...")
	start := time.Now()
	defer func() {
		fmt.Fprintf(listener, "(%f sec.).\n", time.Since(start).Seconds())
	}()

	components, err := s.components(ctx, build)
	if err != nil {
		return nil, err
	}
	s.info("running CPD", "build", build.ID, "workspace", build.Workspace, "components", len(components))

	exec, err := s.opts.NewExecutor(build)
	if err != nil {
		return nil, err
	}

	return exec.Execute(ctx, components)
}

// ResultFolder returns the folder the CPD report is written to.
func ResultFolder(workspace, dir string) string {
	if dir == "" {
		dir = DefaultResultDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(workspace, dir)
}

func (s *Step) components(ctx context.Context, build Build) ([]component.Component, error) {
	filter := component.Filter(component.HasJavaSources)

	if s.opts.ChangedSince != "" {
		repoDir := s.opts.RepoDir
		if repoDir == "" {
			repoDir = build.Workspace
		}
		paths, err := s.opts.Detector.Changed(ctx, repoDir, s.opts.ChangedSince)
		if err != nil {
			return nil, err
		}
		s.debug("changed paths detected", "since", s.opts.ChangedSince, "count", len(paths))
		filter = component.And(filter, changes.AffectedFilter(paths))
	}

	sources := build.Configuration.CompartmentsByState(component.StateSource)
	return component.Collect(sources, filter), nil
}

func (s *Step) info(msg string, args ...any) {
	if s.opts.Logger != nil {
		s.opts.Logger.Info(msg, args...)
	}
}

func (s *Step) logError(msg string, args ...any) {
	if s.opts.Logger != nil {
		s.opts.Logger.Error(msg, args...)
	}
}

func (s *Step) debug(msg string, args ...any) {
	if s.opts.Logger != nil {
		s.opts.Logger.Debug(msg, args...)
	}
}
