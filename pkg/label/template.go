// Package label composes printable label strings for tasks from a
// user-configurable, per-project template.
package label

import (
	"strconv"
	"time"

	"lablink/pkg/taskboard"
)

// Template describes how a task label is composed: an ordered list of field
// names plus a leading-hash toggle. Templates are persisted per project.
type Template struct {
	Fields     []string `toml:"fields"`
	HashPrefix bool     `toml:"hash_prefix"`
}

// DefaultTemplate returns the template used before a project has saved one.
func DefaultTemplate() Template {
	return Template{
		Fields:     []string{"sequence_number", "team_handle", "name", "team_name"},
		HashPrefix: true,
	}
}

// missingValue is substituted for absent, empty, or unknown fields.
const missingValue = "N/A"

// fieldAccessors is the closed set of label field names. Field access is a
// typed mapping rather than reflection so that an unknown name is a
// well-defined fallback (missingValue), not a runtime surprise.
var fieldAccessors = map[string]func(taskboard.Task) string{
	"id":              func(t taskboard.Task) string { return t.ID },
	"sequence_number": func(t taskboard.Task) string { return strconv.Itoa(t.SequenceNumber) },
	"name":            func(t taskboard.Task) string { return t.Name },
	"created_at": func(t taskboard.Task) string {
		if t.CreatedAt.IsZero() {
			return ""
		}
		return t.CreatedAt.Format(time.RFC3339)
	},
	"status_id":   func(t taskboard.Task) string { return t.StatusID },
	"status_name": func(t taskboard.Task) string { return t.StatusName },
	"team_id":     func(t taskboard.Task) string { return t.TeamID },
	"team_name":   func(t taskboard.Task) string { return t.TeamName },
	"team_handle": func(t taskboard.Task) string { return t.TeamHandle },
}

// FieldNames returns the closed set of selectable field names in the order
// they are offered to the user.
func FieldNames() []string {
	return []string{
		"sequence_number",
		"name",
		"created_at",
		"status_name",
		"team_name",
		"team_handle",
		"id",
		"status_id",
		"team_id",
	}
}

// KnownField reports whether name is part of the closed field set.
func KnownField(name string) bool {
	_, ok := fieldAccessors[name]
	return ok
}

// resolveField returns the task's value for a template field, substituting
// missingValue for unknown names and empty values.
func resolveField(t taskboard.Task, name string) string {
	accessor, ok := fieldAccessors[name]
	if !ok {
		return missingValue
	}
	v := accessor(t)
	if v == "" {
		return missingValue
	}
	return v
}
