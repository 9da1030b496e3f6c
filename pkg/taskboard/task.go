// Package taskboard holds the in-memory task collection together with the
// filter and checkbox-selection state that the CLI and dashboard operate on.
//
// Tasks are owned by the external project service and read-only here, except
// for the locally attached device link which the link orchestrator sets and
// clears through the Store's update path.
package taskboard

import "time"

// Task is one work item fetched from the project service, enriched with
// status and team names so labels can be composed without extra lookups.
type Task struct {
	ID             string      `json:"id"`
	SequenceNumber int         `json:"sequence_number"`
	Name           string      `json:"name"`
	CreatedAt      time.Time   `json:"created_at"`
	StatusID       string      `json:"status_id"`
	StatusName     string      `json:"status_name"`
	TeamID         string      `json:"team_id"`
	TeamName       string      `json:"team_name"`
	TeamHandle     string      `json:"team_handle"`
	DeviceLink     *DeviceLink `json:"device_link,omitempty"`
}

// Linked reports whether a device is currently linked to the task.
func (t Task) Linked() bool {
	return t.DeviceLink != nil
}

// DeviceLink associates one physical device with one task inside a project.
// At most one link exists per (project, task); linking again replaces it.
type DeviceLink struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	TaskID       string    `json:"task_id"`
	SerialNumber string    `json:"serial_number"`
	DeviceID     string    `json:"device_id"`
	DeviceName   string    `json:"device_name"`
	LinkedAt     time.Time `json:"linked_at"`
}
