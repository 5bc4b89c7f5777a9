package app

import (
	"fmt"
	"log"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/sink"
	"github.com/ayusman/mudra/internal/store"
)

// ReloadBindings rebuilds the active binding set from the store and swaps
// it into the registry. Rows that cannot be built are skipped with a log
// line rather than failing the whole reload.
func (a *App) ReloadBindings() error {
	if a.store == nil {
		return nil
	}

	rows, err := a.store.Bindings().List()
	if err != nil {
		return fmt.Errorf("load bindings: %w", err)
	}

	settings := a.cfg.Settings()

	var bindings []*gesture.Binding
	for _, row := range rows {
		b, err := a.buildBinding(row, settings)
		if err != nil {
			log.Printf("Skipping binding %s: %v", row.ID, err)
			continue
		}
		bindings = append(bindings, b)
	}

	a.registry.Replace(bindings)
	log.Printf("Loaded %d bindings", len(bindings))
	return nil
}

// buildBinding turns a persisted row into a live binding: a fresh evaluator
// instance calibrated from the current settings, tied to the sink the
// output kind names. Every continuous binding gets its own evaluator so
// smoothing state is never shared.
func (a *App) buildBinding(row *store.Binding, settings config.Settings) (*gesture.Binding, error) {
	b := &gesture.Binding{
		ID:         row.ID,
		Name:       fmt.Sprintf("%s→%s", row.Gesture, row.Output),
		Channel:    uint8(row.Channel),
		Controller: uint8(row.Controller),
		Gated:      row.Gated,
		Active:     row.Active,
	}

	switch row.Gesture {
	case store.GesturePinch:
		b.Kind = gesture.KindContinuous
		b.Continuous = gesture.NewPinch(settings.PinchMin, settings.PinchMax,
			settings.PinchHysteresis, settings.MinHandWidth)
	case store.GestureArea:
		b.Kind = gesture.KindContinuous
		b.Continuous = gesture.NewArea(settings.AreaMin, settings.AreaMax)
	case store.GestureFist:
		b.Kind = gesture.KindTrigger
		b.Trigger = gesture.NewFist(gesture.DefaultFistAspect)
	case store.GestureThumbsUp:
		b.Kind = gesture.KindTrigger
		b.Trigger = gesture.NewThumbsUp()
	case store.GestureVictory:
		b.Kind = gesture.KindTrigger
		b.Trigger = gesture.NewVictory()
	default:
		return nil, fmt.Errorf("unknown gesture %q", row.Gesture)
	}

	switch row.Output {
	case store.OutputMIDICC:
		if b.Kind != gesture.KindContinuous {
			return nil, fmt.Errorf("output %q needs a continuous gesture", row.Output)
		}
		b.Out = a.midi
	case store.OutputSystemVolume:
		if b.Kind != gesture.KindContinuous {
			return nil, fmt.Errorf("output %q needs a continuous gesture", row.Output)
		}
		b.Out = a.system
	case store.OutputMIDIStop:
		if b.Kind != gesture.KindTrigger {
			return nil, fmt.Errorf("output %q needs a trigger gesture", row.Output)
		}
		b.Action = a.midi.AllNotesOff(b.Channel)
	case store.OutputSystemMute:
		if b.Kind != gesture.KindTrigger {
			return nil, fmt.Errorf("output %q needs a trigger gesture", row.Output)
		}
		b.Action = a.system.Trigger("volume-mute")
	case store.OutputPlayPause:
		if b.Kind != gesture.KindTrigger {
			return nil, fmt.Errorf("output %q needs a trigger gesture", row.Output)
		}
		b.Action = a.system.Trigger("media-play-pause")
	default:
		return nil, fmt.Errorf("unknown output %q", row.Output)
	}

	return b, nil
}
