package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/nwdi-cpd/internal/buildstep"
	"github.com/goliatone/nwdi-cpd/internal/executor"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [configuration]",
		Short: "Generate the CPD build file and run it with Ant",
		Long: `Run loads the development configuration, collects the source folders of every
Java carrying development component in a source compartment, renders the CPD
Ant build file into the workspace and runs its cpd-all target.

The step is skipped when CPD is disabled (--run-cpd=false) and when no
component contributes a source folder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCPD(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

func runCPD(ctx context.Context, out io.Writer, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dc, err := loadConfiguration(args)
	if err != nil {
		return err
	}

	step, err := container.BuildStep()
	if err != nil {
		return newConfigError("failed to create build step", err)
	}

	build := buildstep.Build{
		Workspace:     container.Config().Workspace.Path,
		Configuration: dc,
		ProjectType:   buildstep.ProjectTypeNWDI,
	}
	if !step.Applicable(build.ProjectType) {
		return newValidationError(fmt.Sprintf("%s does not apply to %s projects", step.DisplayName(), build.ProjectType), nil)
	}

	container.Logger().Info("Starting CPD", "configuration", dc.Name, "workspace", build.Workspace)

	result, err := step.Run(ctx, build, out)
	if err != nil {
		if buildstep.IsResultFolderError(err) {
			return newFileError("failed to prepare result folder", err)
		}
		if result != nil && result.Output != "" {
			fmt.Fprintln(out, result.Output)
		}
		return newExecutionError("CPD execution failed", err)
	}

	printResult(out, result)
	return nil
}

func printResult(out io.Writer, result *executor.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	switch result.Status {
	case executor.StatusCompleted:
		fmt.Fprintf(out, "%s CPD report: %s\n", green("✓"), result.ReportPath)
	case executor.StatusSkipped:
		fmt.Fprintf(out, "%s CPD skipped: %s\n", yellow("-"), result.Reason)
	default:
		fmt.Fprintf(out, "%s CPD %s: %s\n", red("✗"), result.Status, result.Reason)
	}
}
