package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/nwdi-cpd/pkg/config"
	"github.com/goliatone/nwdi-cpd/pkg/di"
)

// newRootCommand creates the root cobra command with all subcommands
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nwdi-cpd",
		Short: "Run PMD copy/paste detection over the Java sources of an NWDI build",
		Long: `nwdi-cpd generates an Ant build file covering the source folders of every
development component of a development configuration and runs PMD's CPD task
over them, writing an XML duplication report.

Configuration Sources (in precedence order):
  1. Command-line flags (highest priority)
  2. Environment variables (NWDI_CPD_*)
  3. Configuration file (--config, NWDI_CPD_CONFIG or .nwdi-cpd.yaml)
  4. Built-in defaults (lowest priority)

Exit Codes:
  0  - Success
  1  - Generic error
  2  - Configuration error (missing config, invalid values)
  3  - Validation error (invalid arguments, invalid development configuration)
  5  - File system error (missing files, result folder not writable)
  8  - Execution error (build file generation, Ant failures)

Examples:
  nwdi-cpd run track.yaml --workspace /builds/track_dev
  nwdi-cpd generate track.yaml --minimum-tokens 50
  NWDI_CPD_ANT_OPTS=-Xmx2g nwdi-cpd run track.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeContainer(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			cleanupContainer()
		},
	}

	// Override Cobra's default error handling to use structured errors
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newValidationError("invalid flag usage", err)
	})

	config.AddFlags(cmd)

	cmd.AddCommand(
		newRunCommand(),
		newGenerateCommand(),
		newComponentsCommand(),
		newVersionCommand(),
	)

	return cmd
}

// initializeContainer sets up the dependency injection container with configuration
func initializeContainer(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	start := time.Now()
	builder := config.NewBuilder().
		FromFile(config.ConfigFileFlag(cmd)). // Use explicit config file or auto-discover
		FromEnv().
		FromFlags(cmd) // Flags have the highest precedence

	var err error
	cfg, err = builder.Build()
	if err != nil {
		if config.IsValidationError(err) {
			return newValidationError("invalid configuration", err)
		}
		return newConfigError("failed to build configuration", err)
	}

	options := []di.Option{di.WithConfig(cfg)}
	if cfg.Logging.Level == "debug" || cfg.Logging.Verbose {
		options = append(options, di.WithInstrumentation())
	}

	container, err = di.New(options...)
	if err != nil {
		return newConfigError("failed to initialize dependencies", err)
	}

	container.Logger().Debug("CLI container initialized",
		"command", cmd.Name(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// cleanupContainer performs cleanup of container resources
func cleanupContainer() {
	if container == nil {
		return
	}
	if err := container.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "nwdi-cpd: container cleanup warning: %v\n", err)
	}
}
