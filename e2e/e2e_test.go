package e2e

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

// TestE2E_BindingToDispatch walks the full path a user takes: create a
// binding over the HTTP API, reload the pipeline, feed frames through a
// mock detector and watch the gesture land in the application state.
func TestE2E_BindingToDispatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()

	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	cfg, err := config.Load(filepath.Join(tmpDir, ".env"))
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	application := app.New(s, cfg)
	mockDetector := detector.NewMockDetector()
	application.SetDetector(mockDetector)

	srv := server.New(server.Config{Store: s, Settings: cfg, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("CreateBinding", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/bindings",
			"application/json",
			strings.NewReader(`{"gesture": "fist", "output": "midi_stop"}`),
		)
		if err != nil {
			t.Fatalf("create binding error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	})

	t.Run("BindingIsLive", func(t *testing.T) {
		// Creating over the API applies the set to the registry.
		bindings := application.Registry().Bindings()
		if len(bindings) != 1 {
			t.Fatalf("registry holds %d bindings, want 1", len(bindings))
		}
	})

	t.Run("GestureReachesApp", func(t *testing.T) {
		mockDetector.SetHands([]detector.HandLandmarks{detector.FistLandmarks()})

		frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
		application.ProcessFrame(&frame)

		if application.LastGesture() == "" {
			t.Error("fist frame should register as the last gesture")
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after app operations")
		}
		resp.Body.Close()
	})
}

// TestE2E_SettingsRecalibratePipeline changes calibration over the API and
// verifies a reloaded binding picks it up.
func TestE2E_SettingsRecalibratePipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()

	s, _ := store.New(filepath.Join(tmpDir, "data.db"))
	defer s.Close()

	cfg, err := config.Load(filepath.Join(tmpDir, ".env"))
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	srv := server.New(server.Config{Store: s, Settings: cfg})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/settings",
		strings.NewReader(`{"pinch_min": 0.2, "pinch_max": 0.8}`))
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("update settings error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	settings := cfg.Settings()
	if settings.PinchMin != 0.2 || settings.PinchMax != 0.8 {
		t.Errorf("pinch range = [%v, %v], want [0.2, 0.8]", settings.PinchMin, settings.PinchMax)
	}
}
