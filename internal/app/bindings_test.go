package app

import (
	"errors"
	"testing"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

var errDetect = errors.New("detection failed")

func TestReloadBindings_BuildsFromStore(t *testing.T) {
	a, s := newTestApp(t)

	rows := []*store.Binding{
		{ID: "b1", Gesture: store.GesturePinch, Output: store.OutputMIDICC, Controller: 7, Active: true, Position: 0},
		{ID: "b2", Gesture: store.GestureFist, Output: store.OutputMIDIStop, Active: true, Position: 1},
		{ID: "b3", Gesture: store.GestureVictory, Output: store.OutputPlayPause, Active: false, Position: 2},
	}
	for _, row := range rows {
		if err := s.Bindings().Create(row); err != nil {
			t.Fatalf("failed to seed binding: %v", err)
		}
	}

	if err := a.ReloadBindings(); err != nil {
		t.Fatalf("ReloadBindings() error = %v", err)
	}

	bindings := a.Registry().Bindings()
	if len(bindings) != 3 {
		t.Fatalf("loaded %d bindings, want 3", len(bindings))
	}

	if bindings[0].Kind != gesture.KindContinuous || bindings[0].Continuous == nil {
		t.Error("pinch row should build a continuous binding")
	}
	if bindings[0].Controller != 7 {
		t.Errorf("controller = %d, want 7", bindings[0].Controller)
	}
	if bindings[1].Kind != gesture.KindTrigger || bindings[1].Trigger == nil || bindings[1].Action == nil {
		t.Error("fist row should build a trigger binding with an action")
	}
	if bindings[2].Active {
		t.Error("inactive rows stay inactive after reload")
	}
}

func TestReloadBindings_SkipsBadRows(t *testing.T) {
	a, s := newTestApp(t)

	// A trigger gesture with a continuous output cannot be built. The
	// store CHECK constraints don't cover pairing, so force the row in.
	bad := &store.Binding{ID: "bad", Gesture: store.GestureFist, Output: store.OutputMIDICC, Active: true}
	if err := s.Bindings().Create(bad); err != nil {
		t.Fatalf("failed to seed binding: %v", err)
	}
	good := &store.Binding{ID: "good", Gesture: store.GestureArea, Output: store.OutputSystemVolume, Active: true}
	if err := s.Bindings().Create(good); err != nil {
		t.Fatalf("failed to seed binding: %v", err)
	}

	if err := a.ReloadBindings(); err != nil {
		t.Fatalf("ReloadBindings() error = %v", err)
	}

	bindings := a.Registry().Bindings()
	if len(bindings) != 1 {
		t.Fatalf("loaded %d bindings, want 1 (bad row skipped)", len(bindings))
	}
	if bindings[0].ID != "good" {
		t.Errorf("kept binding = %s, want good", bindings[0].ID)
	}
}

func TestBuildBinding_AllPairs(t *testing.T) {
	a, _ := newTestApp(t)
	settings := a.cfg.Settings()

	tests := []struct {
		gesture  store.GestureKind
		output   store.OutputKind
		wantKind gesture.Kind
		wantErr  bool
	}{
		{store.GesturePinch, store.OutputMIDICC, gesture.KindContinuous, false},
		{store.GesturePinch, store.OutputSystemVolume, gesture.KindContinuous, false},
		{store.GestureArea, store.OutputMIDICC, gesture.KindContinuous, false},
		{store.GestureFist, store.OutputMIDIStop, gesture.KindTrigger, false},
		{store.GestureThumbsUp, store.OutputPlayPause, gesture.KindTrigger, false},
		{store.GestureVictory, store.OutputSystemMute, gesture.KindTrigger, false},
		{store.GestureFist, store.OutputMIDICC, "", true},
		{store.GesturePinch, store.OutputMIDIStop, "", true},
		{store.GestureKind("wave"), store.OutputMIDICC, "", true},
		{store.GesturePinch, store.OutputKind("smoke"), "", true},
	}

	for _, tt := range tests {
		row := &store.Binding{ID: "x", Gesture: tt.gesture, Output: tt.output, Active: true}
		b, err := a.buildBinding(row, settings)

		if tt.wantErr {
			if err == nil {
				t.Errorf("%s/%s: expected an error", tt.gesture, tt.output)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s/%s: unexpected error %v", tt.gesture, tt.output, err)
			continue
		}
		if b.Kind != tt.wantKind {
			t.Errorf("%s/%s: kind = %s, want %s", tt.gesture, tt.output, b.Kind, tt.wantKind)
		}
	}
}

func TestBuildBinding_UsesCalibration(t *testing.T) {
	a, _ := newTestApp(t)

	settings := a.cfg.Settings()
	settings.PinchMin = 0.2
	settings.PinchMax = 0.9

	row := &store.Binding{ID: "b1", Gesture: store.GesturePinch, Output: store.OutputMIDICC, Active: true}
	b, err := a.buildBinding(row, settings)
	if err != nil {
		t.Fatalf("buildBinding() error = %v", err)
	}

	pinch, ok := b.Continuous.(*gesture.Pinch)
	if !ok {
		t.Fatalf("evaluator is %T, want *gesture.Pinch", b.Continuous)
	}
	if pinch.MinRatio != 0.2 || pinch.MaxRatio != 0.9 {
		t.Errorf("pinch range = [%v, %v], want [0.2, 0.9]", pinch.MinRatio, pinch.MaxRatio)
	}
}

func TestBuildBinding_FreshEvaluatorPerBinding(t *testing.T) {
	a, _ := newTestApp(t)
	settings := a.cfg.Settings()

	row := &store.Binding{ID: "b1", Gesture: store.GesturePinch, Output: store.OutputMIDICC, Active: true}

	first, err := a.buildBinding(row, settings)
	if err != nil {
		t.Fatalf("buildBinding() error = %v", err)
	}
	second, err := a.buildBinding(row, settings)
	if err != nil {
		t.Fatalf("buildBinding() error = %v", err)
	}

	if first.Continuous == second.Continuous {
		t.Error("each binding must own its evaluator so smoothing state is not shared")
	}
}
