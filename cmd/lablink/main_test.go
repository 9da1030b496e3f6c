package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// startTaskServer serves a fake task API with one project ("p-1") holding two
// tasks across two teams.
func startTaskServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api_keys/jwt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"jwt-1"}`)
	})
	mux.HandleFunc("GET /api/v3/account/projects", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"p-1","name":"North Tower"}]`)
	})
	mux.HandleFunc("GET /api/v3/projects/p-1/tasks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":"t-2","sequence_number":2,"name":"Room 102","status_id":"st-1","team_id":"tm-2"},
			{"id":"t-1","sequence_number":1,"name":"Room 101","status_id":"st-1","team_id":"tm-1"}
		]`)
	})
	mux.HandleFunc("GET /api/v3/projects/p-1/teams", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":"tm-1","name":"HVAC","handle":"HV"},
			{"id":"tm-2","name":"Electrical","handle":"EL"}
		]`)
	})
	mux.HandleFunc("GET /api/v3/account/project_attributes/p-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"statuses":[{"id":"st-1","name":"In Progress"}]}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// startDeviceServer serves a fake device API that accepts every registration.
func startDeviceServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"at-1"}`)
	})
	mux.HandleFunc("POST /v1/locations/loc-1/devices", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// setupHome points LABLINK_HOME at a temp dir and writes a config wired to the
// given fake servers.
func setupHome(t *testing.T, taskURL, deviceURL string) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("LABLINK_HOME", home)
	t.Setenv("LABLINK_CONFIG_PATH", "")
	t.Setenv("LABLINK_DB_PATH", "")

	content := fmt.Sprintf(`
fieldwire:
  api_url: %s
  token_url: %s
  api_token: tok
airthings:
  api_url: %s
  accounts_url: %s
  client_id: cid
  client_secret: csecret
  account_id: acc-1
projects:
  p-1:
    location_id: loc-1
`, taskURL, taskURL, deviceURL, deviceURL)

	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("create home: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return home
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
