// Package server provides the HTTP control surface for Mudra: binding and
// settings management, the camera preview stream and live gesture values.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/sink"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Settings  *config.Config
	App       *app.App
}

// Server represents the HTTP server for the Mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	values *ValuesHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(cfg Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Values returns the live-values WebSocket handler so the pipeline can
// publish into it. Nil when no App is configured.
func (s *Server) Values() *ValuesHandler {
	return s.values
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		apply := func() error { return nil }
		if s.config.App != nil {
			apply = s.config.App.ReloadBindings
		}
		bindingsHandler := api.NewBindingsHandler(s.config.Store, apply)
		s.mux.Handle("/api/bindings", bindingsHandler)
		s.mux.Handle("/api/bindings/", bindingsHandler)
	}

	if s.config.Settings != nil {
		reconfigure := func() error { return nil }
		if s.config.App != nil {
			reconfigure = s.config.App.Reconfigure
		}
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Settings, reconfigure))
	}

	s.mux.HandleFunc("/api/cameras", s.handleCameras)
	s.mux.HandleFunc("/api/midi/ports", s.handleMIDIPorts)

	if s.config.App != nil {
		s.mux.HandleFunc("/api/midi/stop", s.handleMIDIStop)
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App.Camera))

		s.values = NewValuesHandler()
		s.mux.Handle("/api/values", s.values)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

// handleCameras lists usable capture devices.
func (s *Server) handleCameras(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	devices := capture.ListDevices(10)
	if devices == nil {
		devices = []capture.Device{}
	}
	writeJSON(w, map[string]any{"cameras": devices})
}

// handleMIDIPorts lists available MIDI output ports.
func (s *Server) handleMIDIPorts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ports := sink.OutPortNames()
	if ports == nil {
		ports = []string{}
	}
	writeJSON(w, map[string]any{"ports": ports})
}

// handleMIDIStop is the panic button: all notes off on channel 0.
func (s *Server) handleMIDIStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.config.App.MIDI().AllNotesOff(0).Fire(); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]any{"status": "stopped"})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
