package auditlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lablink/pkg/taskboard"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "links.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRecordAndQuery(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	rec := taskboard.DeviceLink{
		ProjectID:    "p-1",
		TaskID:       "t-1",
		SerialNumber: "2969020562",
		DeviceID:     "KKXSYYT",
		LinkedAt:     time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC),
	}
	if err := l.RecordLink(ctx, rec); err != nil {
		t.Fatalf("RecordLink() error: %v", err)
	}
	if err := l.RecordUnlink(ctx, "p-1", "t-1"); err != nil {
		t.Fatalf("RecordUnlink() error: %v", err)
	}

	events, err := l.Query(ctx, QueryOpts{ProjectID: "p-1"})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	// Newest first.
	if events[0].Action != ActionUnlink || events[1].Action != ActionLink {
		t.Errorf("events out of order: %+v", events)
	}
	if events[1].SerialNumber != "2969020562" || events[1].DeviceID != "KKXSYYT" {
		t.Errorf("link event = %+v", events[1])
	}
	if !events[1].CreatedAt.Equal(rec.LinkedAt) {
		t.Errorf("link event time = %v, want %v", events[1].CreatedAt, rec.LinkedAt)
	}
	// The unlink event had no timestamp; it defaults to now.
	if events[0].CreatedAt.IsZero() {
		t.Error("unlink event has zero timestamp")
	}
}

func TestQueryFilters(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	for _, e := range []Event{
		{ProjectID: "p-1", TaskID: "t-1", Action: ActionLink},
		{ProjectID: "p-1", TaskID: "t-2", Action: ActionLink},
		{ProjectID: "p-1", TaskID: "t-1", Action: ActionUnlink},
		{ProjectID: "p-2", TaskID: "t-9", Action: ActionLink},
	} {
		if err := l.Record(ctx, e); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"by project", QueryOpts{ProjectID: "p-1"}, 3},
		{"by task", QueryOpts{ProjectID: "p-1", TaskID: "t-1"}, 2},
		{"by action", QueryOpts{ProjectID: "p-1", Action: ActionUnlink}, 1},
		{"with limit", QueryOpts{ProjectID: "p-1", Limit: 2}, 2},
		{"other project", QueryOpts{ProjectID: "p-3"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := l.Query(ctx, tt.opts)
			if err != nil {
				t.Fatalf("Query() error: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}
}
