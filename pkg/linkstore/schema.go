// Package linkstore persists device-link records in SQLite.
package linkstore

// SchemaDDL defines the SQLite schema for the link database.
// The UNIQUE constraint backs the one-link-per-task rule: inserting a link
// for a task that already has one replaces the old row.
const SchemaDDL = `
CREATE TABLE IF NOT EXISTS links (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    task_id TEXT NOT NULL,
    serial_number TEXT NOT NULL,
    device_id TEXT NOT NULL,
    device_name TEXT NOT NULL,
    linked_at TEXT NOT NULL DEFAULT (datetime('now')),
    UNIQUE (project_id, task_id)
);

CREATE INDEX IF NOT EXISTS links_project_idx ON links (project_id);
`
