package app

import (
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/sink"
	"github.com/ayusman/mudra/internal/store"
)

// TestApp_TriggerGesture_FiresOnce drives the frame-processing path with a
// mock detector: a held fist must dispatch exactly one trigger event, and
// showing it again after the hand leaves must dispatch a second.
func TestApp_TriggerGesture_FiresOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	a, _ := newTestApp(t)

	mock := detector.NewMockDetector()
	fist := detector.FistLandmarks()
	mock.SetHands([]detector.HandLandmarks{fist})
	a.SetDetector(mock)

	action := sink.NewMockSink()
	a.Registry().Replace([]*gesture.Binding{{
		ID:      "b1",
		Name:    "fist-stop",
		Kind:    gesture.KindTrigger,
		Trigger: gesture.NewFist(0),
		Action:  action,
		Active:  true,
	}})

	feedFrames := func(n int) {
		for i := 0; i < n; i++ {
			frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
			a.ProcessFrame(&frame)
		}
	}

	feedFrames(5)
	if action.Fires() != 1 {
		t.Errorf("held fist fired %d times, want 1", action.Fires())
	}
	if a.LastGesture() != "fist-stop" {
		t.Errorf("last gesture = %q, want %q", a.LastGesture(), "fist-stop")
	}

	// Hand leaves the frame, then the fist comes back.
	mock.SetHands(nil)
	feedFrames(2)
	mock.SetHands([]detector.HandLandmarks{fist})
	feedFrames(3)

	if action.Fires() != 2 {
		t.Errorf("re-shown fist fired %d times total, want 2", action.Fires())
	}
}

// TestApp_ContinuousGesture_TracksPinch checks that pinch frames flow
// through detection into the continuous sink.
func TestApp_ContinuousGesture_TracksPinch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	a, _ := newTestApp(t)

	mock := detector.NewMockDetector()
	a.SetDetector(mock)

	out := sink.NewMockSink()
	a.Registry().Replace([]*gesture.Binding{{
		ID:         "b1",
		Name:       "pinch-volume",
		Kind:       gesture.KindContinuous,
		Continuous: gesture.NewPinch(0, 0, 0, 0),
		Out:        out,
		Controller: sink.CCVolume,
		Active:     true,
	}})

	for _, dist := range []float64{40, 100, 180} {
		hand := detector.PinchLandmarks(dist)
		mock.SetHands([]detector.HandLandmarks{hand})

		frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
		a.ProcessFrame(&frame)
	}

	values := out.Values()
	if len(values) != 3 {
		t.Fatalf("dispatched %d values, want 3", len(values))
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			t.Errorf("values %v should increase with pinch distance", values)
		}
	}
}

func TestApp_DetectorErrorDoesNotDispatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	a, _ := newTestApp(t)

	mock := detector.NewMockDetector()
	mock.SetError(errDetect)
	a.SetDetector(mock)

	action := sink.NewMockSink()
	a.Registry().Replace([]*gesture.Binding{{
		ID:      "b1",
		Name:    "fist-stop",
		Kind:    gesture.KindTrigger,
		Trigger: gesture.NewFist(0),
		Action:  action,
		Active:  true,
	}})

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	a.ProcessFrame(&frame)

	if action.Fires() != 0 {
		t.Errorf("detector error should not dispatch, got %d fires", action.Fires())
	}
}

func TestApp_SetEnabled(t *testing.T) {
	a, _ := newTestApp(t)

	if !a.IsEnabled() {
		t.Error("app should start enabled")
	}

	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Error("app should be disabled after SetEnabled(false)")
	}

	a.SetEnabled(true)
	if !a.IsEnabled() {
		t.Error("app should be enabled after SetEnabled(true)")
	}
}

func TestApp_OnGestureCallback(t *testing.T) {
	a, _ := newTestApp(t)

	var seen []string
	a.OnGesture = func(name string) {
		seen = append(seen, name)
	}

	a.noteGesture("victory-mute")

	if len(seen) != 1 || seen[0] != "victory-mute" {
		t.Errorf("callback saw %v, want [victory-mute]", seen)
	}
	if a.LastGesture() != "victory-mute" {
		t.Errorf("last gesture = %q, want %q", a.LastGesture(), "victory-mute")
	}
}

// newTestApp creates an App over a temp store and default settings, with the
// mock detector injected so nothing touches real devices.
func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()

	tmpDir := t.TempDir()

	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	cfg, err := config.Load(filepath.Join(tmpDir, ".env"))
	if err != nil {
		t.Fatalf("config load error = %v", err)
	}

	a := New(s, cfg)
	a.SetDetector(detector.NewMockDetector())
	return a, s
}
