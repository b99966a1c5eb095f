package di

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/goliatone/nwdi-cpd/internal/buildhelper"
	"github.com/goliatone/nwdi-cpd/internal/descriptor"
	"github.com/goliatone/nwdi-cpd/internal/executor"
	"github.com/goliatone/nwdi-cpd/pkg/config"
)

// provideConfigWithDefaults builds a configuration from the environment and defaults.
// Precedence between sources is enforced by pkg/config.
func provideConfigWithDefaults() (*config.Config, error) {
	return config.NewBuilder().FromEnv().Build()
}

// provideGenerator creates a build file generator for workspace. Workspace relative
// paths in cfg are resolved against workspace rather than the configured one.
func provideGenerator(cfg *config.Config, workspace string, fs afero.Fs, logger Logger) (*descriptor.Generator, error) {
	return descriptor.NewGenerator(descriptor.Options{
		BuildFilePath:              resolveIn(workspace, cfg.CPD.BuildFile),
		OutputFile:                 resolveIn(workspace, cfg.CPD.ReportPath),
		Encoding:                   cfg.CPD.Encoding,
		MinimumTokenCount:          cfg.CPD.MinimumTokenCount,
		BaseExcludes:               cfg.CPD.Excludes,
		BaseContainsRegexpExcludes: cfg.CPD.ContainsRegexpExcludes,
		TemplatePath:               cfg.CPD.Template,
		Helper:                     buildhelper.New(workspace, fs),
		Fs:                         fs,
		Logger:                     logger,
	})
}

// provideExecutor creates the Ant executor running the generator's build file.
func provideExecutor(cfg *config.Config, workspace string, gen executor.Generator, runner executor.CommandRunner, logger Logger) (executor.Executor, error) {
	props := cfg.AntProperties()
	// A relative lib dir follows the build workspace.
	if _, ok := props["cpd.dir"]; ok {
		props["cpd.dir"] = resolveIn(workspace, cfg.Ant.LibDir)
	}

	if cfg.Ant.Timeout > 0 {
		logger.Debug("Executor configured with timeout", "timeout", cfg.Ant.Timeout)
	}

	return executor.New(executor.Options{
		Generator:     gen,
		Runner:        runner,
		AntBinary:     cfg.Ant.Binary,
		Target:        cfg.Ant.Target,
		JVMOptions:    cfg.Ant.JVMOptions,
		Properties:    props,
		Workspace:     workspace,
		ReportPath:    resolveIn(workspace, cfg.CPD.ReportPath),
		MinAntVersion: cfg.Ant.MinVersion,
		Timeout:       cfg.Ant.Timeout,
		Logger:        logger,
	})
}

func resolveIn(workspace, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}
