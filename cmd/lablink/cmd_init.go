package main

import (
	"fmt"

	"lablink/internal/config"

	"github.com/spf13/cobra"
)

// newInitCmd creates the "lablink init" subcommand.
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long:  "Creates the lablink home directory and a commented config.yaml\nfor you to fill in with service credentials and project locations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := ResolvePaths()
			if err != nil {
				return fmt.Errorf("resolve paths: %w", err)
			}

			if err := config.WriteScaffold(paths.ConfigPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", paths.ConfigPath)
			fmt.Fprintln(cmd.OutOrStdout(), "Fill in the credentials, then run \"lablink projects\" to verify access.")
			return nil
		},
	}
}
