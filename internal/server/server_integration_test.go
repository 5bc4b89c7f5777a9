package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/store"
)

func TestAPI_BindingWorkflow(t *testing.T) {
	// Setup
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Create a binding
	createBody := `{"gesture": "pinch", "output": "midi_cc", "controller": 7, "gated": true}`
	resp, err := client.Post(ts.URL+"/api/bindings", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/bindings error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID         string `json:"id"`
		Gesture    string `json:"gesture"`
		Controller int    `json:"controller"`
		Active     bool   `json:"active"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Gesture != "pinch" {
		t.Errorf("created gesture = %s, want pinch", created.Gesture)
	}
	if created.Controller != 7 {
		t.Errorf("created controller = %d, want 7", created.Controller)
	}
	if !created.Active {
		t.Error("new bindings should default to active")
	}

	// 2. List bindings
	resp, _ = client.Get(ts.URL + "/api/bindings")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/bindings status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Bindings []struct {
			ID string `json:"id"`
		} `json:"bindings"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Bindings) != 1 {
		t.Fatalf("len(bindings) = %d, want 1", len(listed.Bindings))
	}

	// 3. Update the binding
	updateBody := `{"controller": 1, "active": false}`
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/bindings/"+created.ID, bytes.NewBufferString(updateBody))
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var updated struct {
		Controller int  `json:"controller"`
		Active     bool `json:"active"`
	}
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()

	if updated.Controller != 1 || updated.Active {
		t.Errorf("updated = %+v, want controller 1 and inactive", updated)
	}

	// 4. Delete binding
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/bindings/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/bindings/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_RejectsMismatchedBinding(t *testing.T) {
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	// A trigger gesture cannot feed a continuous output.
	body := `{"gesture": "fist", "output": "midi_cc"}`
	resp, err := ts.Client().Post(ts.URL+"/api/bindings", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}
