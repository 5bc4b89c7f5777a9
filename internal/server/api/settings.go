package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/ayusman/mudra/internal/config"
)

// SettingsHandler handles HTTP requests for application settings. Updates
// are persisted to the .env file and then pushed into the running pipeline
// through reconfigure.
type SettingsHandler struct {
	cfg         *config.Config
	reconfigure func() error
}

// NewSettingsHandler creates a new SettingsHandler with the given config.
func NewSettingsHandler(cfg *config.Config, reconfigure func() error) *SettingsHandler {
	if reconfigure == nil {
		reconfigure = func() error { return nil }
	}
	return &SettingsHandler{cfg: cfg, reconfigure: reconfigure}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type updateSettingsRequest struct {
	CameraIndex     *int     `json:"camera_index"`
	DetectionConf   *float64 `json:"detection_conf"`
	MIDIPort        *string  `json:"midi_port"`
	PinchMin        *float64 `json:"pinch_min"`
	PinchMax        *float64 `json:"pinch_max"`
	PinchHysteresis *float64 `json:"pinch_hysteresis"`
	MinHandWidth    *float64 `json:"min_hand_width"`
	AreaMin         *float64 `json:"area_min"`
	AreaMax         *float64 `json:"area_max"`
}

// get handles GET /api/settings and returns the current settings.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cfg.Settings())
}

// update handles PUT /api/settings. Only the fields present in the request
// are changed; each one is written back to the .env file.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DetectionConf != nil && (*req.DetectionConf < 0 || *req.DetectionConf > 1) {
		writeError(w, http.StatusBadRequest, "detection_conf must be 0-1")
		return
	}
	if req.CameraIndex != nil && *req.CameraIndex < 0 {
		writeError(w, http.StatusBadRequest, "camera_index must be >= 0")
		return
	}

	// Validate calibration against what would result, not just the fields
	// in the request, so a partial update cannot invert a range.
	next := h.cfg.Settings()
	if req.PinchMin != nil {
		next.PinchMin = *req.PinchMin
	}
	if req.PinchMax != nil {
		next.PinchMax = *req.PinchMax
	}
	if req.AreaMin != nil {
		next.AreaMin = *req.AreaMin
	}
	if req.AreaMax != nil {
		next.AreaMax = *req.AreaMax
	}
	if next.PinchMin < 0 || next.PinchMax <= next.PinchMin {
		writeError(w, http.StatusBadRequest, "pinch range must satisfy 0 <= min < max")
		return
	}
	if next.AreaMax <= next.AreaMin {
		writeError(w, http.StatusBadRequest, "area range must satisfy min < max")
		return
	}
	if req.PinchHysteresis != nil && *req.PinchHysteresis < 0 {
		writeError(w, http.StatusBadRequest, "pinch_hysteresis must be >= 0")
		return
	}
	if req.MinHandWidth != nil && *req.MinHandWidth < 0 {
		writeError(w, http.StatusBadRequest, "min_hand_width must be >= 0")
		return
	}

	sets := map[string]string{}
	if req.CameraIndex != nil {
		sets[config.KeyCameraIndex] = strconv.Itoa(*req.CameraIndex)
	}
	if req.DetectionConf != nil {
		sets[config.KeyDetectionConf] = formatFloat(*req.DetectionConf)
	}
	if req.MIDIPort != nil {
		sets[config.KeyMIDIPort] = *req.MIDIPort
	}
	if req.PinchMin != nil {
		sets[config.KeyPinchMin] = formatFloat(*req.PinchMin)
	}
	if req.PinchMax != nil {
		sets[config.KeyPinchMax] = formatFloat(*req.PinchMax)
	}
	if req.PinchHysteresis != nil {
		sets[config.KeyPinchHysteresis] = formatFloat(*req.PinchHysteresis)
	}
	if req.MinHandWidth != nil {
		sets[config.KeyMinHandWidth] = formatFloat(*req.MinHandWidth)
	}
	if req.AreaMin != nil {
		sets[config.KeyAreaMin] = formatFloat(*req.AreaMin)
	}
	if req.AreaMax != nil {
		sets[config.KeyAreaMax] = formatFloat(*req.AreaMax)
	}

	for key, value := range sets {
		if err := h.cfg.Set(key, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}

	if len(sets) > 0 {
		if err := h.reconfigure(); err != nil {
			log.Printf("Error applying settings: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, h.cfg.Settings())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
