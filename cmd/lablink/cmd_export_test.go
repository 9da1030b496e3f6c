package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportLabels(t *testing.T) {
	srv := startTaskServer(t)
	setupHome(t, srv.URL, srv.URL)
	outDir := t.TempDir()

	out, err := runCommand(t, "export", "p-1", "labels", "--out", outDir)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if !strings.Contains(out, "2 tasks") {
		t.Errorf("export output = %q", out)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "tasks.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(string(content), "\n")
	if lines[0] != "component_label" || len(lines) != 3 {
		t.Errorf("unexpected label export:\n%s", content)
	}
	if lines[1] != "#1-HV-Room 101-HVAC" {
		t.Errorf("first label = %q", lines[1])
	}
}

func TestExportTeamFilter(t *testing.T) {
	srv := startTaskServer(t)
	setupHome(t, srv.URL, srv.URL)
	outDir := t.TempDir()

	if _, err := runCommand(t, "export", "p-1", "tasks", "--out", outDir, "--team", "HVAC"); err != nil {
		t.Fatalf("export error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "all_tasks.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if strings.Contains(string(content), "Room 102") {
		t.Errorf("filtered-out task exported:\n%s", content)
	}
	if !strings.Contains(string(content), "Room 101") {
		t.Errorf("matching task missing:\n%s", content)
	}
}

// TestExportUnknownStatusFilter verifies a bad filter fails before anything
// is written.
func TestExportUnknownStatusFilter(t *testing.T) {
	srv := startTaskServer(t)
	setupHome(t, srv.URL, srv.URL)
	outDir := t.TempDir()

	_, err := runCommand(t, "export", "p-1", "rooms", "--out", outDir, "--status", "nope")
	if err == nil {
		t.Fatal("export succeeded with unknown status, want error")
	}

	if _, statErr := os.Stat(filepath.Join(outDir, "rooms_serialnumbers.csv")); statErr == nil {
		t.Error("export file written despite error")
	}
}

func TestExportUnknownKind(t *testing.T) {
	srv := startTaskServer(t)
	setupHome(t, srv.URL, srv.URL)

	if _, err := runCommand(t, "export", "p-1", "pdf"); err == nil {
		t.Error("export succeeded with unknown kind, want error")
	}
}
