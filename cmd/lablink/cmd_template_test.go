package main

import (
	"strings"
	"testing"

	"lablink/pkg/label"
)

func TestTemplateCommandShowsDefault(t *testing.T) {
	t.Setenv("LABLINK_HOME", t.TempDir())

	out, err := runCommand(t, "template", "p-1")
	if err != nil {
		t.Fatalf("template error: %v", err)
	}

	if !strings.Contains(out, "sequence_number, team_handle, name, team_name") {
		t.Errorf("default fields not shown: %q", out)
	}
	if !strings.Contains(out, "hash prefix: on") {
		t.Errorf("default hash prefix not shown: %q", out)
	}
}

func TestTemplateCommandEditPersists(t *testing.T) {
	t.Setenv("LABLINK_HOME", t.TempDir())

	_, err := runCommand(t, "template", "p-1", "--fields", "name,team_handle", "--hash", "off")
	if err != nil {
		t.Fatalf("template edit error: %v", err)
	}

	out, err := runCommand(t, "template", "p-1")
	if err != nil {
		t.Fatalf("template error: %v", err)
	}
	if !strings.Contains(out, "fields: name, team_handle") {
		t.Errorf("edited fields not persisted: %q", out)
	}
	if !strings.Contains(out, "hash prefix: off") {
		t.Errorf("hash toggle not persisted: %q", out)
	}

	// Another project still gets the default.
	out, err = runCommand(t, "template", "p-2")
	if err != nil {
		t.Fatalf("template error: %v", err)
	}
	if !strings.Contains(out, "sequence_number, team_handle, name, team_name") {
		t.Errorf("other project inherited edits: %q", out)
	}
}

func TestTemplateCommandRejectsUnknownField(t *testing.T) {
	t.Setenv("LABLINK_HOME", t.TempDir())

	_, err := runCommand(t, "template", "p-1", "--fields", "name,owner")
	if err == nil || !strings.Contains(err.Error(), "unknown field") {
		t.Errorf("error = %v, want unknown field", err)
	}
}

func TestApplyTemplateEdits(t *testing.T) {
	tpl := label.DefaultTemplate()

	changed, err := applyTemplateEdits(&tpl, templateConfig{})
	if err != nil || changed {
		t.Errorf("no-op edit: changed=%v err=%v", changed, err)
	}

	changed, err = applyTemplateEdits(&tpl, templateConfig{hash: "off"})
	if err != nil || !changed || tpl.HashPrefix {
		t.Errorf("hash off: changed=%v err=%v tpl=%+v", changed, err, tpl)
	}

	if _, err := applyTemplateEdits(&tpl, templateConfig{hash: "maybe"}); err == nil {
		t.Error("hash=maybe accepted, want error")
	}
}
