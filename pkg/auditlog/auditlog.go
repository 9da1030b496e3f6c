// Package auditlog records every link and unlink operation in SQLite so a
// project's pairing history survives restarts and is queryable from the CLI.
package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Actions recorded in the log.
const (
	ActionLink   = "link"
	ActionUnlink = "unlink"
)

// SchemaDDL creates the audit table. Idempotent.
const SchemaDDL = `
CREATE TABLE IF NOT EXISTS link_events (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id    TEXT NOT NULL,
	task_id       TEXT NOT NULL,
	action        TEXT NOT NULL,
	serial_number TEXT NOT NULL DEFAULT '',
	device_id     TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS link_events_project_idx ON link_events(project_id, created_at);
`

// Event is a single recorded operation.
type Event struct {
	ID           int64
	ProjectID    string
	TaskID       string
	Action       string
	SerialNumber string
	DeviceID     string
	CreatedAt    time.Time
}

// QueryOpts specifies filter criteria for querying events.
type QueryOpts struct {
	// ProjectID scopes the query to one project (required).
	ProjectID string

	// TaskID filters to a single task.
	TaskID string

	// Action filters to ActionLink or ActionUnlink.
	Action string

	// Limit restricts the number of results (0 = no limit).
	Limit int
}

// Log is an append-only audit log backed by SQLite.
type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit log at path.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, SchemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply audit schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Close releases the database connection. Safe to call multiple times.
func (l *Log) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Record appends one event. The event timestamp defaults to now.
func (l *Log) Record(ctx context.Context, e Event) error {
	ts := e.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO link_events (project_id, task_id, action, serial_number, device_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ProjectID, e.TaskID, e.Action, e.SerialNumber, e.DeviceID, ts.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record %s event: %w", e.Action, err)
	}
	return nil
}

// Query retrieves events matching the filter, newest first.
// Returns an empty slice if no events match.
func (l *Log) Query(ctx context.Context, opts QueryOpts) ([]Event, error) {
	query, args := buildQuery(opts)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e  Event
			ts string
		)
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.TaskID, &e.Action, &e.SerialNumber, &e.DeviceID, &ts); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// buildQuery constructs the SQL query and arguments from QueryOpts.
func buildQuery(opts QueryOpts) (string, []any) {
	var conditions []string
	var args []any

	query := "SELECT id, project_id, task_id, action, serial_number, device_id, created_at FROM link_events WHERE 1=1"

	if opts.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.TaskID != "" {
		conditions = append(conditions, "task_id = ?")
		args = append(args, opts.TaskID)
	}
	if opts.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, opts.Action)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	return query, args
}
