package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newProjectsCmd creates the "lablink projects" subcommand.
func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List accessible task service projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			projects, err := app.tasks.FetchProjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch projects: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(w, "no projects found")
				return nil
			}

			fmt.Fprintf(w, "%-38s %s\n", "ID", "NAME")
			for _, p := range projects {
				fmt.Fprintf(w, "%-38s %s\n", p.ID, p.Name)
			}
			return nil
		},
	}
}
