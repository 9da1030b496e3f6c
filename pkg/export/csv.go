// Package export serializes selected tasks into the downloadable CSV files:
// the printable label file, the full task dump, and the room/device summary.
// All exports are pure functions of the task slice and label template so the
// CLI and the dashboard produce identical bytes.
package export

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"lablink/pkg/label"
	"lablink/pkg/taskboard"
)

// File names used when the exports are written to disk.
const (
	LabelsFileName   = "tasks.csv"
	AllTasksFileName = "all_tasks.csv"
	RoomsFileName    = "rooms_serialnumbers.csv"
)

// ErrNoTasksSelected guards against writing an empty export file.
var ErrNoTasksSelected = errors.New("no tasks selected")

// allTasksHeader lists every task column, the flattened device-link columns,
// and the trailing composed-label column, in output order.
var allTasksHeader = []string{
	"id",
	"sequence_number",
	"name",
	"created_at",
	"status_id",
	"status_name",
	"team_id",
	"team_name",
	"team_handle",
	"device_link_serial_number",
	"device_link_device_id",
	"device_link_device_name",
	"device_link_project_id",
	"device_link_task_id",
	"device_link_linked_at",
	"component_label",
}

// Labels renders the printable label file: one identifier-form label per
// selected task under a component_label header.
func Labels(tasks []taskboard.Task, tpl label.Template) (string, error) {
	if len(tasks) == 0 {
		return "", ErrNoTasksSelected
	}

	var b strings.Builder
	b.WriteString("component_label\n")
	for i, t := range tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(label.ComposeID(t, tpl))
	}
	return b.String(), nil
}

// AllTasks renders the full task dump: every task field, the device-link
// fields flattened with underscore-joined keys, and the composed label as the
// last column. Commas inside values are replaced with semicolons so no
// quoting is needed.
func AllTasks(tasks []taskboard.Task, tpl label.Template) (string, error) {
	if len(tasks) == 0 {
		return "", ErrNoTasksSelected
	}

	var b strings.Builder
	b.WriteString(strings.Join(allTasksHeader, ","))
	for _, t := range tasks {
		row := []string{
			t.ID,
			strconv.Itoa(t.SequenceNumber),
			t.Name,
			formatTime(t.CreatedAt),
			t.StatusID,
			t.StatusName,
			t.TeamID,
			t.TeamName,
			t.TeamHandle,
		}
		row = append(row, linkColumns(t.DeviceLink)...)
		for i, v := range row {
			row[i] = sanitize(v)
		}
		row = append(row, sanitize(label.Compose(t, tpl)))

		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}
	return b.String(), nil
}

// Rooms renders the room/device summary: the task name is the room
// identifier, and each row lists the serial numbers linked under that room.
// Rooms appear in first-seen task order; tasks without a link or a name are
// skipped.
func Rooms(tasks []taskboard.Task) (string, error) {
	if len(tasks) == 0 {
		return "", ErrNoTasksSelected
	}

	var order []string
	serials := make(map[string][]string)
	for _, t := range tasks {
		if t.Name == "" || !t.Linked() {
			continue
		}
		if _, ok := serials[t.Name]; !ok {
			order = append(order, t.Name)
		}
		serials[t.Name] = append(serials[t.Name], t.DeviceLink.SerialNumber)
	}

	var b strings.Builder
	b.WriteString("Room;Serial Numbers")
	for _, room := range order {
		b.WriteString("\n")
		b.WriteString(room)
		b.WriteString(";")
		b.WriteString(strings.Join(serials[room], ","))
	}
	return b.String(), nil
}

// linkColumns flattens a device link into its export columns; a nil link
// yields empty cells.
func linkColumns(l *taskboard.DeviceLink) []string {
	if l == nil {
		return []string{"", "", "", "", "", ""}
	}
	return []string{
		l.SerialNumber,
		l.DeviceID,
		l.DeviceName,
		l.ProjectID,
		l.TaskID,
		formatTime(l.LinkedAt),
	}
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

// sanitize keeps the output comma-delimited without quoting.
func sanitize(v string) string {
	return strings.ReplaceAll(v, ",", ";")
}
