package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/nwdi-cpd/internal/component"
	"github.com/goliatone/nwdi-cpd/internal/descriptor"
)

func newGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate [configuration]",
		Short: "Render the CPD Ant build file without running it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

func runGenerate(ctx context.Context, out io.Writer, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dc, err := loadConfiguration(args)
	if err != nil {
		return err
	}

	gen, err := container.NewGenerator("")
	if err != nil {
		return newConfigError("failed to create build file generator", err)
	}

	components := component.Collect(dc.CompartmentsByState(component.StateSource), component.HasJavaSources)
	if err := gen.Execute(ctx, components); err != nil {
		if descriptor.IsWriteError(err) {
			return newFileError("failed to write build file", err)
		}
		return newExecutionError("failed to generate build file", err)
	}

	if len(gen.BuildFiles()) == 0 {
		fmt.Fprintln(out, "No source folders found, nothing generated.")
		return nil
	}
	fmt.Fprintf(out, "Generated %s\n", gen.BuildFilePath())
	fmt.Fprintf(out, "CPD report will be written to %s\n", container.Config().ReportFile())
	return nil
}
