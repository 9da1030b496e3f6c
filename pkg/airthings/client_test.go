package airthings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("grant_type") != "client_credentials" ||
			r.PostForm.Get("client_id") != "cid" ||
			r.PostForm.Get("client_secret") != "csecret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	mux.HandleFunc("POST /v1/locations/loc-1/devices", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("accountId") != "acc-1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var dev Device
		if err := json.NewDecoder(r.Body).Decode(&dev); err != nil || dev.SerialNumber == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if dev.SerialNumber == "9999999999" {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "device already registered"})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(dev)
	})

	return httptest.NewServer(mux)
}

func TestClient_CreateDevice(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := New(srv.URL, srv.URL, "cid", "csecret", "acc-1")
	dev := Device{ID: "509821", Name: "#1 - Room 101", SerialNumber: "2969020562"}
	if err := c.CreateDevice(context.Background(), "loc-1", dev); err != nil {
		t.Fatalf("CreateDevice() error: %v", err)
	}
}

func TestClient_CreateDeviceConflictSurfacesMessage(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := New(srv.URL, srv.URL, "cid", "csecret", "acc-1")
	dev := Device{ID: "509821", Name: "#1 - Room 101", SerialNumber: "9999999999"}
	err := c.CreateDevice(context.Background(), "loc-1", dev)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("CreateDevice() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "device already registered" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestClient_BadCredentials(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := New(srv.URL, srv.URL, "cid", "wrong", "acc-1")
	dev := Device{ID: "509821", Name: "n", SerialNumber: "2969020562"}
	if err := c.CreateDevice(context.Background(), "loc-1", dev); err == nil {
		t.Error("CreateDevice() with bad credentials succeeded, want error")
	}
}
