package main

import (
	"fmt"
	"os"

	"github.com/goliatone/nwdi-cpd/pkg/config"
	"github.com/goliatone/nwdi-cpd/pkg/di"
)

// Exit codes for different error types
const (
	ExitSuccess         = 0 // Successful execution
	ExitGenericError    = 1 // Generic error
	ExitConfigError     = 2 // Configuration error
	ExitValidationError = 3 // Input validation error
	ExitFileError       = 5 // File system error
	ExitExecutionError  = 8 // CPD or Ant failure
)

// Global variables for CLI state
var (
	container di.Container
	cfg       *config.Config
)

func main() {
	if err := execute(); err != nil {
		// Handle structured errors with appropriate exit codes
		if cliErr, ok := err.(*CLIError); ok {
			fmt.Fprintf(os.Stderr, "nwdi-cpd: %s\n", cliErr.Message)
			if cliErr.Cause != nil {
				fmt.Fprintf(os.Stderr, "  Cause: %v\n", cliErr.Cause)
			}
			os.Exit(cliErr.ExitCode())
		}

		fmt.Fprintf(os.Stderr, "nwdi-cpd: %v\n", err)
		os.Exit(ExitGenericError)
	}
}

// execute is the main entry point that sets up and runs the CLI
func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
