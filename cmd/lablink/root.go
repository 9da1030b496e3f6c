package main

import (
	"fmt"

	"lablink/internal/version"

	"github.com/spf13/cobra"
)

// newRootCmd creates the root lablink command with all subcommands attached.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lablink",
		Short:         "Device linking and label composition for construction tasks",
		Long:          "lablink pairs air quality monitors with construction tasks.\nIt scans device codes, registers devices, composes printable labels,\nand exports task/device data as CSV.",
		Version:       fmt.Sprintf("lablink %s", version.String()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newInitCmd(),
		newProjectsCmd(),
		newTasksCmd(),
		newLinkCmd(),
		newUnlinkCmd(),
		newTemplateCmd(),
		newExportCmd(),
		newHistoryCmd(),
		newDashCmd(),
	)

	return cmd
}
