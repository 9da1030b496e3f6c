package main

import (
	"fmt"

	"lablink/pkg/devicecode"

	"github.com/spf13/cobra"
)

// linkConfig holds the manual-entry flags for the link command.
type linkConfig struct {
	serial string
	device string
}

// newLinkCmd creates the "lablink link" subcommand.
func newLinkCmd() *cobra.Command {
	var cfg linkConfig

	cmd := &cobra.Command{
		Use:   "link <project-id> <task-id> [code]",
		Short: "Register a device and link it to a task",
		Long: `Links an air quality monitor to a task. The code argument accepts any
scanned form: the QR code URL, the numeric barcode, or "<serial> <device-id>".
Use --serial and --device instead of (or to override) the scanned code.

The device is registered in the device service under the project's configured
location, named with the task's composed label.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, taskID := args[0], args[1]

			serial, device := cfg.serial, cfg.device
			if len(args) == 3 {
				parsed := devicecode.Parse(args[2])
				if serial == "" {
					serial = parsed.SerialNumber
				}
				if device == "" {
					device = parsed.DeviceID
				}
			}
			if err := checkCode(serial, device); err != nil {
				return err
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			// Resolve the device location before any network fetch so a
			// misconfigured project fails fast.
			if _, err := app.cfg.LocationID(projectID); err != nil {
				return err
			}

			board, err := app.loadBoard(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			o, err := app.orchestrator(projectID, board)
			if err != nil {
				return err
			}
			tpl, err := app.template(projectID)
			if err != nil {
				return err
			}

			rec, err := o.Link(cmd.Context(), taskID, serial, device, tpl)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "linked %s to task %s as %q\n",
				rec.SerialNumber, rec.TaskID, rec.DeviceName)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.serial, "serial", "", "device serial number (10 digits)")
	cmd.Flags().StringVar(&cfg.device, "device", "", "device id (6-7 alphanumeric characters)")

	return cmd
}

// checkCode validates the resolved serial number and device id, surfacing the
// same messages the interactive views show.
func checkCode(serial, device string) error {
	if serial == "" || device == "" {
		return fmt.Errorf("need both a serial number and a device id (scan a code or pass --serial and --device)")
	}
	if msg := devicecode.ValidateSerialNumber(serial); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	if msg := devicecode.ValidateDeviceID(device); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return nil
}
