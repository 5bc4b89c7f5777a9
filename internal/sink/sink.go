// Package sink defines the output contracts gesture bindings dispatch to,
// plus the MIDI and system-plugin implementations.
package sink

import "math"

// MIDI continuous controller numbers used by the default bindings.
const (
	CCModulation  uint8 = 1
	CCVolume      uint8 = 7
	CCOctave      uint8 = 15
	CCAllNotesOff uint8 = 123
)

// ContinuousSink consumes a normalized value in [0,1] for a MIDI-style
// channel and controller. Implementations map the value to their own scale.
// A returned error means the dispatch failed and may be retried; it must
// never be treated as fatal by callers.
type ContinuousSink interface {
	Set(value float64, channel, controller uint8) error
}

// TriggerSink consumes a one-shot event: all-notes-off, mute, play/pause.
type TriggerSink interface {
	Fire() error
}

// TriggerFunc adapts a function to the TriggerSink interface.
type TriggerFunc func() error

// Fire calls the wrapped function.
func (f TriggerFunc) Fire() error { return f() }

// CCValue converts a normalized [0,1] value to a 7-bit MIDI CC value.
// Out-of-range input is clamped.
func CCValue(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math.Round(v * 127))
}
