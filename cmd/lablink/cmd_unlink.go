package main

import (
	"bufio"
	"fmt"
	"strings"

	"lablink/pkg/linker"

	"github.com/spf13/cobra"
)

// newUnlinkCmd creates the "lablink unlink" subcommand.
func newUnlinkCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "unlink <project-id> <task-id>",
		Short: "Remove a task's device link",
		Long:  "Removes the stored link between a task and its device.\n\n" + linker.UnlinkWarning,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, taskID := args[0], args[1]
			w := cmd.OutOrStdout()

			if !yes {
				fmt.Fprintln(w, linker.UnlinkWarning)
				fmt.Fprint(w, "Unlink anyway? [y/N] ")
				if !confirm(cmd) {
					fmt.Fprintln(w, "aborted")
					return nil
				}
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			board, err := app.loadBoard(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			o, err := app.orchestrator(projectID, board)
			if err != nil {
				return err
			}

			if err := o.Unlink(cmd.Context(), taskID); err != nil {
				return err
			}

			fmt.Fprintf(w, "unlinked task %s\n", taskID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// confirm reads a single line from the command's input and reports whether
// the user answered yes.
func confirm(cmd *cobra.Command) bool {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
