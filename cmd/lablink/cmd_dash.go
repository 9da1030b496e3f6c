package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// newDashCmd creates the "lablink dash" subcommand.
func newDashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dash <project-id>",
		Short: "Launch the interactive task board",
		Long:  "Opens the lablink TUI for scanning codes, linking devices,\nediting the label template, and exporting CSVs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("dash needs an interactive terminal")
			}

			dashCmd := exec.CommandContext(cmd.Context(), "lablink-dash", args[0])
			dashCmd.Stdin = os.Stdin
			dashCmd.Stdout = os.Stdout
			dashCmd.Stderr = os.Stderr

			if err := dashCmd.Run(); err != nil {
				return fmt.Errorf("run lablink-dash: %w", err)
			}

			return nil
		},
	}
}
