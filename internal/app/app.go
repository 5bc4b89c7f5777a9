// Package app wires the Mudra pipeline together: camera capture, hand
// detection, the gesture registry and the output sinks.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/sink"
	"github.com/ayusman/mudra/internal/store"
)

// VolumePlugin is the plugin name system outputs dispatch to.
const VolumePlugin = "volume-control"

// App is the main application that orchestrates gesture detection and
// output dispatch.
type App struct {
	store      *store.Store
	cfg        *config.Config
	camera     capture.Camera
	buffer     *capture.FrameBuffer
	motion     *capture.MotionDetector
	detector   detector.Detector
	registry   *gesture.Registry
	midi       *sink.MIDIOut
	system     *sink.SystemSink
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	mu          sync.RWMutex
	enabled     bool
	stopCh      chan struct{}
	wg          sync.WaitGroup
	lastGesture string

	// OnGesture is called whenever a trigger binding fires, for UI
	// feedback. Optional.
	OnGesture func(name string)

	// detectorInjected is set when tests supply their own detector, so
	// Reconfigure keeps it instead of rebuilding the real one.
	detectorInjected bool
}

// New creates an App from the persisted bindings store and .env settings.
func New(st *store.Store, cfg *config.Config) *App {
	settings := cfg.Settings()

	a := &App{
		store:      st,
		cfg:        cfg,
		camera:     capture.NewCamera(settings.CameraIndex),
		buffer:     capture.NewFrameBuffer(),
		motion:     capture.NewMotionDetector(1.0), // 1% pixel change
		registry:   gesture.NewRegistry(),
		midi:       sink.NewMIDIOut(settings.MIDIPort),
		pluginMgr:  plugin.NewManager(settings.PluginDir),
		pluginExec: plugin.NewExecutor(5000), // 5 second plugin timeout
		enabled:    true,
	}
	a.system = sink.NewSystemSink(a.pluginMgr, a.pluginExec, VolumePlugin)
	a.detector = newDetector(settings.DetectionConf)

	a.registry.OnTrigger = func(id, name string) {
		a.noteGesture(name)
	}

	return a
}

// newDetector prefers MediaPipe and falls back to the mock detector so the
// rest of the application keeps working without the Python service.
func newDetector(minConfidence float64) detector.Detector {
	dc := detector.DefaultConfig()
	dc.MinConfidence = minConfidence

	if mp, err := detector.NewMediaPipeDetector(dc); err == nil {
		log.Println("Using MediaPipe hand detection")
		return mp
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		return detector.NewMockDetector()
	}
}

// SetEnabled enables or disables gesture dispatch. Capture keeps running so
// the preview stream stays alive.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture dispatch is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
	a.detectorInjected = true
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Registry returns the gesture registry.
func (a *App) Registry() *gesture.Registry {
	return a.registry
}

// MIDI returns the MIDI output sink.
func (a *App) MIDI() *sink.MIDIOut {
	return a.midi
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// LastGesture returns the name of the most recent trigger binding fired.
func (a *App) LastGesture() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastGesture
}

func (a *App) noteGesture(name string) {
	a.mu.Lock()
	a.lastGesture = name
	cb := a.OnGesture
	a.mu.Unlock()

	if cb != nil {
		cb(name)
	}
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Reconfigure applies changed .env settings: the camera, detector and MIDI
// port are rebuilt, and the pipeline restarts if it was running.
func (a *App) Reconfigure() error {
	wasRunning := a.isRunning()
	if wasRunning {
		a.Stop()
	}

	settings := a.cfg.Settings()

	a.mu.Lock()
	a.camera = capture.NewCamera(settings.CameraIndex)
	a.midi.SetPort(settings.MIDIPort)
	if !a.detectorInjected {
		if a.detector != nil {
			a.detector.Close()
		}
		a.detector = newDetector(settings.DetectionConf)
	}
	a.mu.Unlock()

	// Calibration ranges feed the evaluators, so rebuild the binding set.
	if err := a.ReloadBindings(); err != nil {
		return err
	}

	if wasRunning {
		return a.Start()
	}
	return nil
}

func (a *App) isRunning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCh != nil
}
