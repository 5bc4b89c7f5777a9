package sink

import (
	"fmt"
	"log"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters the rtmidi driver
)

// MIDIOut sends control-change messages to a named MIDI output port.
//
// The port is opened lazily on first use. A failed send drops the
// connection so the next dispatch reopens it; since the gesture registry
// dispatches every frame, an unplugged device reconnects by itself.
type MIDIOut struct {
	portName string

	mu   sync.Mutex
	send func(msg midi.Message) error
}

// NewMIDIOut creates a MIDI sink targeting the output port with the given
// name. The port does not need to exist yet.
func NewMIDIOut(portName string) *MIDIOut {
	return &MIDIOut{portName: portName}
}

// Set sends value as a CC message on the given channel and controller.
func (m *MIDIOut) Set(value float64, channel, controller uint8) error {
	return m.sendMessage(midi.ControlChange(channel, controller, CCValue(value)))
}

// AllNotesOff returns a trigger that sends CC 123 on the given channel,
// silencing everything downstream. Bound to the fist gesture and the panic
// button.
func (m *MIDIOut) AllNotesOff(channel uint8) TriggerSink {
	return TriggerFunc(func() error {
		return m.sendMessage(midi.ControlChange(channel, CCAllNotesOff, 0))
	})
}

func (m *MIDIOut) sendMessage(msg midi.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureOpen(); err != nil {
		return err
	}

	if err := m.send(msg); err != nil {
		m.send = nil // reconnect on the next dispatch
		return fmt.Errorf("midi send: %w", err)
	}
	return nil
}

func (m *MIDIOut) ensureOpen() error {
	if m.send != nil {
		return nil
	}

	out, err := midi.FindOutPort(m.portName)
	if err != nil {
		return fmt.Errorf("midi out %q: %w", m.portName, err)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		return fmt.Errorf("open midi out %q: %w", m.portName, err)
	}

	m.send = send
	log.Printf("MIDI output connected: %s", m.portName)
	return nil
}

// SetPort retargets the sink to a different output port. The current
// connection is dropped; the next dispatch opens the new port.
func (m *MIDIOut) SetPort(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name != m.portName {
		m.portName = name
		m.send = nil
	}
}

// Close drops the port connection. The process-wide MIDI driver is released
// separately via CloseDriver.
func (m *MIDIOut) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.send = nil
}

// OutPortNames lists the names of the currently available MIDI output ports.
func OutPortNames() []string {
	var names []string
	for _, p := range midi.GetOutPorts() {
		names = append(names, p.String())
	}
	return names
}

// CloseDriver releases the underlying MIDI driver. Call once at shutdown.
func CloseDriver() {
	midi.CloseDriver()
}
