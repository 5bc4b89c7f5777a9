// Package config loads and persists application settings from a .env file.
// Settings cover device selection, detection confidence and the calibration
// ranges consumed by the gesture evaluators; bindings themselves live in
// the SQLite store.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"

	"github.com/ayusman/mudra/internal/gesture"
)

// Recognized .env keys.
const (
	KeyCameraIndex     = "CAMERA_INDEX"
	KeyDetectionConf   = "DETECTION_CONF"
	KeyMIDIPort        = "MIDI_PORT"
	KeyHTTPAddr        = "HTTP_ADDR"
	KeyPluginDir       = "PLUGIN_DIR"
	KeyPinchMin        = "PINCH_MIN"
	KeyPinchMax        = "PINCH_MAX"
	KeyPinchHysteresis = "PINCH_HYSTERESIS"
	KeyMinHandWidth    = "MIN_HAND_WIDTH"
	KeyAreaMin         = "AREA_MIN"
	KeyAreaMax         = "AREA_MAX"
)

// Settings is the parsed view of the .env file with defaults applied.
type Settings struct {
	CameraIndex   int     `json:"camera_index"`
	DetectionConf float64 `json:"detection_conf"`
	MIDIPort      string  `json:"midi_port"`
	HTTPAddr      string  `json:"http_addr"`
	PluginDir     string  `json:"plugin_dir"`

	// Calibration for the continuous evaluators.
	PinchMin        float64 `json:"pinch_min"`
	PinchMax        float64 `json:"pinch_max"`
	PinchHysteresis float64 `json:"pinch_hysteresis"`
	MinHandWidth    float64 `json:"min_hand_width"`
	AreaMin         float64 `json:"area_min"`
	AreaMax         float64 `json:"area_max"`
}

// DefaultSettings returns the settings used when no .env value overrides
// them.
func DefaultSettings() Settings {
	return Settings{
		CameraIndex:     0,
		DetectionConf:   0.7,
		MIDIPort:        "Mudra Out",
		HTTPAddr:        ":8080",
		PluginDir:       "plugins",
		PinchMin:        gesture.DefaultPinchMin,
		PinchMax:        gesture.DefaultPinchMax,
		PinchHysteresis: gesture.DefaultPinchHysteresis,
		MinHandWidth:    gesture.DefaultMinHandWidth,
		AreaMin:         gesture.DefaultAreaMin,
		AreaMax:         gesture.DefaultAreaMax,
	}
}

// Config owns the .env file: values are read once at load and written back
// whenever a setting changes, so edits survive restarts the same way the
// file would if edited by hand.
type Config struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// Load reads the .env file at path. A missing file is not an error; it is
// created on the first Set.
func Load(path string) (*Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		values = make(map[string]string)
	}

	return &Config{
		path:   path,
		values: values,
	}, nil
}

// Path returns the .env file location.
func (c *Config) Path() string {
	return c.path
}

// Set updates one key and persists the whole file.
func (c *Config) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = value
	if err := godotenv.Write(c.values, c.path); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}

// Settings parses the current values, falling back to defaults for keys
// that are absent or malformed.
func (c *Config) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := DefaultSettings()
	s.CameraIndex = c.intValue(KeyCameraIndex, s.CameraIndex)
	s.DetectionConf = c.floatValue(KeyDetectionConf, s.DetectionConf)
	s.MIDIPort = c.stringValue(KeyMIDIPort, s.MIDIPort)
	s.HTTPAddr = c.stringValue(KeyHTTPAddr, s.HTTPAddr)
	s.PluginDir = c.stringValue(KeyPluginDir, s.PluginDir)
	s.PinchMin = c.floatValue(KeyPinchMin, s.PinchMin)
	s.PinchMax = c.floatValue(KeyPinchMax, s.PinchMax)
	s.PinchHysteresis = c.floatValue(KeyPinchHysteresis, s.PinchHysteresis)
	s.MinHandWidth = c.floatValue(KeyMinHandWidth, s.MinHandWidth)
	s.AreaMin = c.floatValue(KeyAreaMin, s.AreaMin)
	s.AreaMax = c.floatValue(KeyAreaMax, s.AreaMax)
	return s
}

func (c *Config) stringValue(key, fallback string) string {
	if v, ok := c.values[key]; ok && v != "" {
		return v
	}
	return fallback
}

func (c *Config) intValue(key string, fallback int) int {
	v, ok := c.values[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (c *Config) floatValue(key string, fallback float64) float64 {
	v, ok := c.values[key]
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
