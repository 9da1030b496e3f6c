package auditlog

import (
	"context"

	"lablink/pkg/taskboard"
)

// RecordLink appends a link event for a persisted device link.
func (l *Log) RecordLink(ctx context.Context, rec taskboard.DeviceLink) error {
	return l.Record(ctx, Event{
		ProjectID:    rec.ProjectID,
		TaskID:       rec.TaskID,
		Action:       ActionLink,
		SerialNumber: rec.SerialNumber,
		DeviceID:     rec.DeviceID,
		CreatedAt:    rec.LinkedAt,
	})
}

// RecordUnlink appends an unlink event for a task.
func (l *Log) RecordUnlink(ctx context.Context, projectID, taskID string) error {
	return l.Record(ctx, Event{
		ProjectID: projectID,
		TaskID:    taskID,
		Action:    ActionUnlink,
	})
}
