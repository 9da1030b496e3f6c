package linkstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lablink/pkg/taskboard"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no link exists for the requested task.
var ErrNotFound = errors.New("link not found")

// Store is the SQLite-backed link persistence layer.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the link database at path and applies the schema.
// WAL journal mode and a 5-second busy timeout are set so the CLI and the
// dashboard can share the file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode on %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout on %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, SchemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply link schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert writes a link record. An existing link for the same (project, task)
// pair is replaced, never duplicated.
func (s *Store) Insert(ctx context.Context, rec taskboard.DeviceLink) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO links (id, project_id, task_id, serial_number, device_id, device_name, linked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (project_id, task_id) DO UPDATE SET
			id = excluded.id,
			serial_number = excluded.serial_number,
			device_id = excluded.device_id,
			device_name = excluded.device_name,
			linked_at = excluded.linked_at`,
		rec.ID, rec.ProjectID, rec.TaskID, rec.SerialNumber, rec.DeviceID,
		rec.DeviceName, rec.LinkedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert link for task %s: %w", rec.TaskID, err)
	}
	return nil
}

// Delete removes the link for a task. Deleting a task with no link is an
// error so callers cannot mistake a stale view for a successful unlink.
func (s *Store) Delete(ctx context.Context, projectID, taskID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM links WHERE project_id = ? AND task_id = ?", projectID, taskID)
	if err != nil {
		return fmt.Errorf("delete link for task %s: %w", taskID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete link for task %s: %w", taskID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns the link for a single task, or ErrNotFound.
func (s *Store) Get(ctx context.Context, projectID, taskID string) (taskboard.DeviceLink, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, task_id, serial_number, device_id, device_name, linked_at
		FROM links WHERE project_id = ? AND task_id = ?`, projectID, taskID)

	rec, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return taskboard.DeviceLink{}, ErrNotFound
	}
	if err != nil {
		return taskboard.DeviceLink{}, fmt.Errorf("get link for task %s: %w", taskID, err)
	}
	return rec, nil
}

// List returns all links for a project, oldest first.
func (s *Store) List(ctx context.Context, projectID string) ([]taskboard.DeviceLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, task_id, serial_number, device_id, device_name, linked_at
		FROM links WHERE project_id = ? ORDER BY linked_at, task_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list links for project %s: %w", projectID, err)
	}
	defer rows.Close()

	var out []taskboard.DeviceLink
	for rows.Next() {
		rec, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("list links for project %s: %w", projectID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list links for project %s: %w", projectID, err)
	}
	return out, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLink(s scanner) (taskboard.DeviceLink, error) {
	var rec taskboard.DeviceLink
	var linkedAt string
	if err := s.Scan(&rec.ID, &rec.ProjectID, &rec.TaskID, &rec.SerialNumber,
		&rec.DeviceID, &rec.DeviceName, &linkedAt); err != nil {
		return taskboard.DeviceLink{}, err
	}
	if ts, err := time.Parse(time.RFC3339, linkedAt); err == nil {
		rec.LinkedAt = ts
	}
	return rec, nil
}
