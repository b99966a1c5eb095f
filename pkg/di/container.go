package di

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/nwdi-cpd/internal/buildstep"
	"github.com/goliatone/nwdi-cpd/internal/changes"
	"github.com/goliatone/nwdi-cpd/internal/component"
	"github.com/goliatone/nwdi-cpd/internal/descriptor"
	"github.com/goliatone/nwdi-cpd/internal/executor"
	"github.com/goliatone/nwdi-cpd/pkg/config"
)

// Logger defines the logging interface used throughout the application.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Container exposes resolved dependencies for the CLI orchestration layer.
type Container interface {
	// Core service accessors
	Components() component.Loader
	Runner() executor.CommandRunner
	Detector() changes.Detector

	// Per-build factories; an empty workspace uses the configured one.
	NewGenerator(workspace string) (*descriptor.Generator, error)
	NewExecutor(build buildstep.Build) (executor.Executor, error)
	BuildStep() (*buildstep.Step, error)

	// Configuration and infrastructure
	Config() *config.Config
	Logger() Logger
	Fs() afero.Fs

	// Resource management
	Close() error
}

// Option customises container construction using the functional options pattern.
// Options allow overriding default dependencies for testing and customization.
type Option func(*builder) error

// New creates a container with default wiring and applies the provided options.
// It returns an error if required dependencies are missing or if any option fails.
func New(opts ...Option) (Container, error) {
	b := &builder{}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("di: failed to apply option: %w", err)
		}
	}

	return b.build()
}

// builder holds the dependencies being assembled into a container.
type builder struct {
	cfg *config.Config

	enableInstrumentation bool

	logger    Logger
	logOutput io.Writer
	fs        afero.Fs

	components component.Loader
	runner     executor.CommandRunner
	detector   changes.Detector
}

// container implements the Container interface with concrete dependencies.
type container struct {
	cfg        *config.Config
	logger     Logger
	logCloser  io.Closer
	fs         afero.Fs
	components component.Loader
	runner     executor.CommandRunner
	detector   changes.Detector
}

func (c *container) Components() component.Loader  { return c.components }
func (c *container) Runner() executor.CommandRunner { return c.runner }
func (c *container) Detector() changes.Detector     { return c.detector }

func (c *container) Config() *config.Config { return c.cfg }
func (c *container) Logger() Logger         { return c.logger }
func (c *container) Fs() afero.Fs           { return c.fs }

// NewGenerator returns a build file generator rooted at workspace.
func (c *container) NewGenerator(workspace string) (*descriptor.Generator, error) {
	return provideGenerator(c.cfg, c.workspace(workspace), c.fs, c.logger)
}

// NewExecutor returns the Ant executor for build. It matches buildstep.ExecutorFactory.
func (c *container) NewExecutor(build buildstep.Build) (executor.Executor, error) {
	ws := c.workspace(build.Workspace)
	gen, err := provideGenerator(c.cfg, ws, c.fs, c.logger)
	if err != nil {
		return nil, err
	}
	return provideExecutor(c.cfg, ws, gen, c.runner, c.logger)
}

// BuildStep returns a step configured from the container config.
func (c *container) BuildStep() (*buildstep.Step, error) {
	return buildstep.New(buildstep.Options{
		RunCPD:       c.cfg.CPD.Enabled,
		ChangedSince: c.cfg.CPD.ChangedSince,
		RepoDir:      c.cfg.CPD.RepoDir,
		ResultDir:    c.cfg.ResultDir(),
		NewExecutor:  c.NewExecutor,
		Detector:     c.detector,
		Fs:           c.fs,
		Logger:       c.logger,
	})
}

func (c *container) workspace(ws string) string {
	if ws == "" {
		return c.cfg.Workspace.Path
	}
	return ws
}

// Close releases the log file, if one is open.
func (c *container) Close() error {
	var errs []error

	if c.logCloser != nil {
		if err := c.logCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("log file close: %w", err))
		}
	}

	if closer, ok := c.runner.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("command runner close: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %w", errors.Join(errs...))
	}
	return nil
}

// build assembles the container with all dependencies resolved.
func (b *builder) build() (Container, error) {
	start := time.Now()

	// Configuration must be resolved first as other services depend on it
	if b.cfg == nil {
		cfg, err := provideConfigWithDefaults()
		if err != nil {
			return nil, fmt.Errorf("di: failed to provide default config: %w", err)
		}
		b.cfg = cfg
	}

	var logCloser io.Closer
	if b.logger == nil {
		logger, closer := provideLoggerWithConfig(b.cfg, b.logOutput)
		b.logger = logger
		logCloser = closer
	}

	if b.fs == nil {
		b.fs = afero.NewOsFs()
	}
	if b.components == nil {
		b.components = component.NewLoader(b.fs)
	}
	if b.runner == nil {
		b.runner = executor.NewCommandRunner()
	}
	if b.detector == nil {
		b.detector = changes.NewDetector()
	}

	c := &container{
		cfg:        b.cfg,
		logger:     b.logger,
		logCloser:  logCloser,
		fs:         b.fs,
		components: b.components,
		runner:     b.runner,
		detector:   b.detector,
	}

	if b.enableInstrumentation {
		b.logger.Debug("DI container created",
			"duration_ms", time.Since(start).Milliseconds(),
			"workspace", b.cfg.Workspace.Path,
		)
	}

	return c, nil
}

// WithConfig injects an explicit configuration object into the container.
// If not provided, the container uses defaults and environment variables.
func WithConfig(cfg *config.Config) Option {
	return func(b *builder) error {
		if cfg == nil {
			return fmt.Errorf("config cannot be nil")
		}
		b.cfg = cfg
		return nil
	}
}

// WithLogger injects a custom logger into the container.
func WithLogger(logger Logger) Option {
	return func(b *builder) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		b.logger = logger
		return nil
	}
}

// WithLogOutput sends the configured logger to w instead of stderr. Ignored when a log
// file is configured.
func WithLogOutput(w io.Writer) Option {
	return func(b *builder) error {
		if w == nil {
			return fmt.Errorf("log output cannot be nil")
		}
		b.logOutput = w
		return nil
	}
}

// WithFs injects the filesystem used for build files and result folders.
func WithFs(fs afero.Fs) Option {
	return func(b *builder) error {
		if fs == nil {
			return fmt.Errorf("filesystem cannot be nil")
		}
		b.fs = fs
		return nil
	}
}

// WithComponentLoader injects a custom development configuration loader.
func WithComponentLoader(loader component.Loader) Option {
	return func(b *builder) error {
		if loader == nil {
			return fmt.Errorf("component loader cannot be nil")
		}
		b.components = loader
		return nil
	}
}

// WithCommandRunner injects a custom command runner.
func WithCommandRunner(runner executor.CommandRunner) Option {
	return func(b *builder) error {
		if runner == nil {
			return fmt.Errorf("command runner cannot be nil")
		}
		b.runner = runner
		return nil
	}
}

// WithDetector injects a custom changed-file detector.
func WithDetector(detector changes.Detector) Option {
	return func(b *builder) error {
		if detector == nil {
			return fmt.Errorf("detector cannot be nil")
		}
		b.detector = detector
		return nil
	}
}

// WithInstrumentation logs container construction details at debug level.
func WithInstrumentation() Option {
	return func(b *builder) error {
		b.enableInstrumentation = true
		return nil
	}
}
