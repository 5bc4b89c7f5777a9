// Package api provides HTTP API handlers for the Mudra control surface.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

// BindingsHandler handles HTTP requests for binding resources. Every
// mutation calls apply so the running pipeline picks up the change
// without a restart.
type BindingsHandler struct {
	store *store.Store
	apply func() error
}

// NewBindingsHandler creates a new BindingsHandler with the given store.
func NewBindingsHandler(s *store.Store, apply func() error) *BindingsHandler {
	if apply == nil {
		apply = func() error { return nil }
	}
	return &BindingsHandler{store: s, apply: apply}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *BindingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/bindings or /api/bindings/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/bindings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type bindingRequest struct {
	Gesture    string `json:"gesture"`
	Output     string `json:"output"`
	Channel    *int   `json:"channel"`
	Controller *int   `json:"controller"`
	Gated      *bool  `json:"gated"`
	Active     *bool  `json:"active"`
	Position   *int   `json:"position"`
}

type bindingResponse struct {
	ID         string `json:"id"`
	Gesture    string `json:"gesture"`
	Output     string `json:"output"`
	Channel    int    `json:"channel"`
	Controller int    `json:"controller"`
	Gated      bool   `json:"gated"`
	Active     bool   `json:"active"`
	Position   int    `json:"position"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type listBindingsResponse struct {
	Bindings []bindingResponse `json:"bindings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Binding to a bindingResponse.
func toResponse(b *store.Binding) bindingResponse {
	return bindingResponse{
		ID:         b.ID,
		Gesture:    string(b.Gesture),
		Output:     string(b.Output),
		Channel:    b.Channel,
		Controller: b.Controller,
		Gated:      b.Gated,
		Active:     b.Active,
		Position:   b.Position,
		CreatedAt:  b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  b.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func validGesture(g store.GestureKind) bool {
	switch g {
	case store.GesturePinch, store.GestureArea, store.GestureFist,
		store.GestureThumbsUp, store.GestureVictory:
		return true
	}
	return false
}

func validOutput(o store.OutputKind) bool {
	switch o {
	case store.OutputMIDICC, store.OutputSystemVolume, store.OutputMIDIStop,
		store.OutputSystemMute, store.OutputPlayPause:
		return true
	}
	return false
}

// continuousOutput reports whether the output consumes a scalar value.
func continuousOutput(o store.OutputKind) bool {
	return o == store.OutputMIDICC || o == store.OutputSystemVolume
}

// validatePair rejects bindings that mix a trigger gesture with a
// continuous output or vice versa.
func validatePair(g store.GestureKind, o store.OutputKind) error {
	if g.Continuous() != continuousOutput(o) {
		return errors.New("gesture and output kinds do not match")
	}
	return nil
}

// reapply pushes the current binding set into the running pipeline.
// Persistence already succeeded at this point, so a reload failure is
// logged but does not fail the request.
func (h *BindingsHandler) reapply() {
	if err := h.apply(); err != nil {
		log.Printf("Error applying bindings: %v", err)
	}
}

// list handles GET /api/bindings and returns all bindings in display order.
func (h *BindingsHandler) list(w http.ResponseWriter, r *http.Request) {
	bindings, err := h.store.Bindings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list bindings")
		return
	}

	response := listBindingsResponse{
		Bindings: make([]bindingResponse, 0, len(bindings)),
	}

	for _, b := range bindings {
		response.Bindings = append(response.Bindings, toResponse(b))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/bindings/{id} and returns a single binding.
func (h *BindingsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	binding, err := h.store.Bindings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Binding not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get binding")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(binding))
}

// create handles POST /api/bindings and creates a new binding.
func (h *BindingsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req bindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	gesture := store.GestureKind(req.Gesture)
	output := store.OutputKind(req.Output)
	if !validGesture(gesture) {
		writeError(w, http.StatusBadRequest, "Invalid gesture")
		return
	}
	if !validOutput(output) {
		writeError(w, http.StatusBadRequest, "Invalid output")
		return
	}
	if err := validatePair(gesture, output); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	binding := &store.Binding{
		ID:      uuid.New().String(),
		Gesture: gesture,
		Output:  output,
		Active:  true,
	}
	if req.Channel != nil {
		binding.Channel = *req.Channel
	}
	if req.Controller != nil {
		binding.Controller = *req.Controller
	}
	if req.Gated != nil {
		binding.Gated = *req.Gated
	}
	if req.Active != nil {
		binding.Active = *req.Active
	}
	if req.Position != nil {
		binding.Position = *req.Position
	}

	if binding.Channel < 0 || binding.Channel > 15 {
		writeError(w, http.StatusBadRequest, "Channel must be 0-15")
		return
	}
	if binding.Controller < 0 || binding.Controller > 127 {
		writeError(w, http.StatusBadRequest, "Controller must be 0-127")
		return
	}

	if err := h.store.Bindings().Create(binding); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create binding")
		return
	}

	h.reapply()
	writeJSON(w, http.StatusCreated, toResponse(binding))
}

// update handles PUT /api/bindings/{id} and updates an existing binding.
func (h *BindingsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	binding, err := h.store.Bindings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Binding not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get binding")
		return
	}

	var req bindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Gesture != "" {
		gesture := store.GestureKind(req.Gesture)
		if !validGesture(gesture) {
			writeError(w, http.StatusBadRequest, "Invalid gesture")
			return
		}
		binding.Gesture = gesture
	}
	if req.Output != "" {
		output := store.OutputKind(req.Output)
		if !validOutput(output) {
			writeError(w, http.StatusBadRequest, "Invalid output")
			return
		}
		binding.Output = output
	}
	if err := validatePair(binding.Gesture, binding.Output); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Channel != nil {
		if *req.Channel < 0 || *req.Channel > 15 {
			writeError(w, http.StatusBadRequest, "Channel must be 0-15")
			return
		}
		binding.Channel = *req.Channel
	}
	if req.Controller != nil {
		if *req.Controller < 0 || *req.Controller > 127 {
			writeError(w, http.StatusBadRequest, "Controller must be 0-127")
			return
		}
		binding.Controller = *req.Controller
	}
	if req.Gated != nil {
		binding.Gated = *req.Gated
	}
	if req.Active != nil {
		binding.Active = *req.Active
	}
	if req.Position != nil {
		binding.Position = *req.Position
	}

	if err := h.store.Bindings().Update(binding); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update binding")
		return
	}

	h.reapply()
	writeJSON(w, http.StatusOK, toResponse(binding))
}

// delete handles DELETE /api/bindings/{id} and removes a binding.
func (h *BindingsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Bindings().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Binding not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete binding")
		return
	}

	h.reapply()
	w.WriteHeader(http.StatusNoContent)
}
