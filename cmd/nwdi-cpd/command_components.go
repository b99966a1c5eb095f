package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/goliatone/nwdi-cpd/internal/buildhelper"
	"github.com/goliatone/nwdi-cpd/internal/component"
)

func newComponentsCommand() *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "components [configuration]",
		Short: "List the development components and the source folders CPD would analyse",
		Long: `Components prints every development component of the configuration together
with the source folders CPD would analyse. With --dc a single component is shown
in detail, including its test source folders and class path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponents(cmd.OutOrStdout(), args, only)
		},
	}
	cmd.Flags().StringVar(&only, "dc", "", "Show a single development component, given as vendor/name")

	return cmd
}

func runComponents(out io.Writer, args []string, only string) error {
	dc, err := loadConfiguration(args)
	if err != nil {
		return err
	}

	helper := buildhelper.New(container.Config().Workspace.Path, container.Fs())
	if only != "" {
		return describeComponent(out, dc, helper, only)
	}

	table := newTable(out)
	table.SetHeader([]string{"Compartment", "State", "Component", "Type", "Source folders", "Class path"})

	analysed := 0
	for _, compartment := range dc.Compartments {
		for _, c := range compartment.Components {
			folders := "-"
			if compartment.State == component.StateSource && component.HasJavaSources(c) {
				found := append(helper.SourceFolders(c), helper.TestSourceFolders(c)...)
				if len(found) > 0 {
					folders = strings.Join(found, "\n")
					analysed++
				}
			}
			table.Append([]string{
				compartment.Name,
				string(compartment.State),
				c.String(),
				string(c.Type),
				folders,
				strconv.Itoa(len(helper.ClassPath(c))),
			})
		}
	}
	table.Render()

	fmt.Fprintf(out, "\n%d of %d components contribute source folders\n", analysed, countComponents(dc))
	return nil
}

// describeComponent prints the resolved layout of the component named vendor/name.
func describeComponent(out io.Writer, dc *component.DevelopmentConfiguration, helper buildhelper.Helper, id string) error {
	vendor, name, ok := strings.Cut(id, "/")
	if !ok || vendor == "" || name == "" {
		return newValidationError(fmt.Sprintf("invalid component %q, expected vendor/name", id), nil)
	}

	c, found := dc.Find(vendor, name)
	if !found {
		return newValidationError(fmt.Sprintf("component %s not found in %s", id, dc.Name), nil)
	}

	table := newTable(out)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"Component", c.String()},
		{"Type", string(c.Type)},
		{"Folder", buildhelper.ComponentBase(helper.PathToWorkspace(), *c)},
		{"Source folders", joinOrDash(helper.SourceFolders(*c))},
		{"Test source folders", joinOrDash(helper.TestSourceFolders(*c))},
		{"Class path", joinOrDash(helper.ClassPath(*c))},
	})
	table.Render()
	return nil
}

func newTable(out io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	return table
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, "\n")
}

func countComponents(dc *component.DevelopmentConfiguration) int {
	n := 0
	for _, compartment := range dc.Compartments {
		n += len(compartment.Components)
	}
	return n
}
