package main

import (
	"fmt"
	"time"

	"lablink/pkg/auditlog"

	"github.com/spf13/cobra"
)

// historyConfig holds filter flags for the history command.
type historyConfig struct {
	taskID string
	action string
	limit  int
}

// newHistoryCmd creates the "lablink history" subcommand.
func newHistoryCmd() *cobra.Command {
	var cfg historyConfig

	cmd := &cobra.Command{
		Use:   "history <project-id>",
		Short: "Show the project's link/unlink history",
		Long:  "Lists recorded link and unlink operations for a project, newest first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			events, err := app.audit.Query(cmd.Context(), auditlog.QueryOpts{
				ProjectID: args[0],
				TaskID:    cfg.taskID,
				Action:    cfg.action,
				Limit:     cfg.limit,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(w, "no events found")
				return nil
			}

			for _, e := range events {
				serial := e.SerialNumber
				if serial == "" {
					serial = "-"
				}
				fmt.Fprintf(w, "%s  %-6s  task %-38s %s\n",
					e.CreatedAt.UTC().Format(time.RFC3339), e.Action, e.TaskID, serial)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.taskID, "task", "", "show only events for this task id")
	cmd.Flags().StringVar(&cfg.action, "action", "", "show only link or unlink events")
	cmd.Flags().IntVar(&cfg.limit, "limit", 50, "maximum number of events to show")

	return cmd
}
