package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/nwdi-cpd/pkg/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print nwdi-cpd version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return version.Print(cmd.OutOrStdout())
		},
	}
}
