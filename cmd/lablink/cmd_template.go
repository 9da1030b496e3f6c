package main

import (
	"fmt"
	"strings"

	"lablink/pkg/label"

	"github.com/spf13/cobra"
)

// templateConfig holds the edit flags for the template command.
type templateConfig struct {
	fields []string
	hash   string // "on", "off", or "" to leave unchanged
}

// newTemplateCmd creates the "lablink template" subcommand.
func newTemplateCmd() *cobra.Command {
	var cfg templateConfig

	cmd := &cobra.Command{
		Use:   "template <project-id>",
		Short: "Show or edit a project's label template",
		Long: "Shows the project's label template. Pass --fields to replace the\n" +
			"field list (comma separated, in label order) and --hash on|off to\n" +
			"toggle the leading \"#\" before the sequence number.\n\n" +
			"Known fields: " + strings.Join(label.FieldNames(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID := args[0]

			paths, err := ResolvePaths()
			if err != nil {
				return fmt.Errorf("resolve paths: %w", err)
			}
			store := label.NewStore(paths.TemplateDir)

			tpl, err := store.Load(projectID)
			if err != nil {
				return fmt.Errorf("load label template: %w", err)
			}

			changed, err := applyTemplateEdits(&tpl, cfg)
			if err != nil {
				return err
			}
			if changed {
				if err := store.Save(projectID, tpl); err != nil {
					return fmt.Errorf("save label template: %w", err)
				}
			}

			printTemplate(cmd, tpl)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&cfg.fields, "fields", nil, "replace the template fields (comma separated)")
	cmd.Flags().StringVar(&cfg.hash, "hash", "", "prefix the sequence number with '#' (on|off)")

	return cmd
}

// applyTemplateEdits mutates tpl per the flags and reports whether anything
// changed.
func applyTemplateEdits(tpl *label.Template, cfg templateConfig) (bool, error) {
	changed := false

	if len(cfg.fields) > 0 {
		for _, f := range cfg.fields {
			if !label.KnownField(f) {
				return false, fmt.Errorf("unknown field %q (known: %s)", f, strings.Join(label.FieldNames(), ", "))
			}
		}
		tpl.Fields = cfg.fields
		changed = true
	}

	switch cfg.hash {
	case "":
	case "on":
		tpl.HashPrefix = true
		changed = true
	case "off":
		tpl.HashPrefix = false
		changed = true
	default:
		return false, fmt.Errorf("--hash must be on or off, got %q", cfg.hash)
	}

	return changed, nil
}

// printTemplate writes the template and a sample label to the command output.
func printTemplate(cmd *cobra.Command, tpl label.Template) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "fields: %s\n", strings.Join(tpl.Fields, ", "))
	hash := "off"
	if tpl.HashPrefix {
		hash = "on"
	}
	fmt.Fprintf(w, "hash prefix: %s\n", hash)
}
