package main

import (
	"fmt"
	"io"
	"strings"

	"lablink/pkg/label"
	"lablink/pkg/taskboard"

	"github.com/spf13/cobra"
)

// tasksConfig holds filter flags for the tasks command.
type tasksConfig struct {
	statuses []string
	teams    []string
}

// newTasksCmd creates the "lablink tasks" subcommand.
func newTasksCmd() *cobra.Command {
	var cfg tasksConfig

	cmd := &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "List a project's tasks with composed labels",
		Long:  "Lists the project's active tasks sorted by sequence number.\nRepeat --status or --team to filter; values within one flag are ORed,\nacross flags ANDed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			board, err := app.loadBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := applyFilters(board, cfg.statuses, cfg.teams); err != nil {
				return err
			}

			tpl, err := app.template(args[0])
			if err != nil {
				return err
			}

			printTasks(cmd.OutOrStdout(), board.FilteredTasks(), tpl)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&cfg.statuses, "status", nil, "show only tasks with this status (id or name, repeatable)")
	cmd.Flags().StringArrayVar(&cfg.teams, "team", nil, "show only tasks in this team (id, handle, or name, repeatable)")

	return cmd
}

// applyFilters toggles the named status and team filters on the board.
// Values are matched against ids first, then display names.
func applyFilters(board *taskboard.Store, statuses, teams []string) error {
	for _, v := range statuses {
		id, err := resolveStatusID(board.Tasks(), v)
		if err != nil {
			return err
		}
		board.ToggleStatusFilter(id)
	}
	for _, v := range teams {
		id, err := resolveTeamID(board.Tasks(), v)
		if err != nil {
			return err
		}
		board.ToggleCategoryFilter(id)
	}
	return nil
}

// resolveStatusID maps a user-supplied status value to a status id.
func resolveStatusID(tasks []taskboard.Task, value string) (string, error) {
	for _, t := range tasks {
		if t.StatusID == value || strings.EqualFold(t.StatusName, value) {
			return t.StatusID, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", value)
}

// resolveTeamID maps a user-supplied team value to a team id.
func resolveTeamID(tasks []taskboard.Task, value string) (string, error) {
	for _, t := range tasks {
		if t.TeamID == value || strings.EqualFold(t.TeamHandle, value) || strings.EqualFold(t.TeamName, value) {
			return t.TeamID, nil
		}
	}
	return "", fmt.Errorf("unknown team %q", value)
}

// printTasks writes one row per task: sequence, link marker, status, team,
// and the composed label.
func printTasks(w io.Writer, tasks []taskboard.Task, tpl label.Template) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no tasks found")
		return
	}

	fmt.Fprintf(w, "%-6s %-12s %-14s %-10s %s\n", "SEQ", "SERIAL", "STATUS", "TEAM", "LABEL")
	for _, t := range tasks {
		serial := "-"
		if t.Linked() {
			serial = t.DeviceLink.SerialNumber
		}
		fmt.Fprintf(w, "%-6d %-12s %-14s %-10s %s\n",
			t.SequenceNumber, serial, t.StatusName, t.TeamHandle, label.Compose(t, tpl))
	}
}
