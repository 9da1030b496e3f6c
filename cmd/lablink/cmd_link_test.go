package main

import (
	"strings"
	"testing"
)

func TestLinkCommand(t *testing.T) {
	tasks := startTaskServer(t)
	devices := startDeviceServer(t)
	setupHome(t, tasks.URL, devices.URL)

	out, err := runCommand(t, "link", "p-1", "t-1", "https://a.airthin.gs/2969020562?id=KKXSYYT")
	if err != nil {
		t.Fatalf("link error: %v", err)
	}

	if !strings.Contains(out, "linked 2969020562 to task t-1") {
		t.Errorf("link output = %q", out)
	}
	if !strings.Contains(out, "#1 - HV - Room 101 - HVAC") {
		t.Errorf("device name not echoed: %q", out)
	}

	// The link survives into the next invocation via the link database.
	out, err = runCommand(t, "tasks", "p-1")
	if err != nil {
		t.Fatalf("tasks error: %v", err)
	}
	if !strings.Contains(out, "2969020562") {
		t.Errorf("persisted link not shown in task listing:\n%s", out)
	}
}

func TestLinkCommandFlagsOverrideCode(t *testing.T) {
	tasks := startTaskServer(t)
	devices := startDeviceServer(t)
	setupHome(t, tasks.URL, devices.URL)

	out, err := runCommand(t, "link", "p-1", "t-1",
		"https://a.airthin.gs/2969020562?id=KKXSYYT", "--serial", "2860000123")
	if err != nil {
		t.Fatalf("link error: %v", err)
	}
	if !strings.Contains(out, "linked 2860000123") {
		t.Errorf("--serial did not override scanned code: %q", out)
	}
}

func TestLinkCommandRejectsBadInput(t *testing.T) {
	tasks := startTaskServer(t)
	devices := startDeviceServer(t)
	setupHome(t, tasks.URL, devices.URL)

	if _, err := runCommand(t, "link", "p-1", "t-1", "--serial", "123", "--device", "KKXSYYT"); err == nil {
		t.Error("link succeeded with 3-digit serial, want validation error")
	}
	if _, err := runCommand(t, "link", "p-1", "t-1"); err == nil {
		t.Error("link succeeded with no code and no flags, want error")
	}
}

func TestLinkCommandUnconfiguredProject(t *testing.T) {
	tasks := startTaskServer(t)
	devices := startDeviceServer(t)
	setupHome(t, tasks.URL, devices.URL)

	_, err := runCommand(t, "link", "p-2", "t-1", "--serial", "2969020562", "--device", "KKXSYYT")
	if err == nil || !strings.Contains(err.Error(), "location_id") {
		t.Errorf("error = %v, want missing location_id", err)
	}
}

func TestCheckCode(t *testing.T) {
	tests := []struct {
		name           string
		serial, device string
		wantErr        string
	}{
		{"valid", "2969020562", "KKXSYYT", ""},
		{"missing serial", "", "KKXSYYT", "need both"},
		{"missing device", "2969020562", "", "need both"},
		{"short serial", "296902056", "KKXSYYT", "10 digits"},
		{"long device id", "2969020562", "KKXSYYT1", "6 or 7 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCode(tt.serial, tt.device)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("checkCode() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("checkCode() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
