package gesture

import (
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/sink"
)

// Kind distinguishes the two binding variants.
type Kind string

const (
	// KindContinuous maps a scalar evaluator output to a ContinuousSink.
	KindContinuous Kind = "continuous"
	// KindTrigger routes a pose predicate through an edge trigger to a
	// TriggerSink.
	KindTrigger Kind = "trigger"
)

// Binding ties one evaluator to one sink. Continuous bindings use the
// Continuous evaluator and Out sink; trigger bindings use the Trigger
// predicate and Action sink. Each binding owns its evaluator instance and
// its edge state, so bindings never interfere with each other.
type Binding struct {
	ID         string
	Name       string
	Kind       Kind
	Continuous ContinuousEvaluator
	Trigger    DiscreteEvaluator
	Out        sink.ContinuousSink
	Action     sink.TriggerSink
	Channel    uint8
	Controller uint8
	Gated      bool // suppress dispatch while the pinky is extended
	Active     bool

	edge EdgeTrigger
}

// Registry holds the active set of bindings and drives them once per frame.
// The set is replaced wholesale when the user applies new settings and is
// immutable while a frame is processed.
type Registry struct {
	mu       sync.Mutex
	bindings []*Binding

	// OnValue is called with every computed continuous value, including
	// gated ones, so the UI can show live feedback. Optional.
	OnValue func(id string, value float64)

	// OnTrigger is called on every rising edge before the action sink
	// fires. Optional.
	OnTrigger func(id, name string)
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Replace atomically swaps in a new set of bindings. Edge and smoothing
// state of the old set is discarded with it.
func (r *Registry) Replace(bindings []*Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = bindings
}

// Bindings returns a snapshot of the current binding set.
func (r *Registry) Bindings() []*Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Update evaluates every active binding against the current frame's hand.
// A nil hand is a valid "no hand" frame: continuous bindings go silent and
// trigger latches reset, so a gesture released off-camera can fire again.
//
// Sink failures are logged and never abort the frame; since Update runs
// every frame, dispatch retries naturally on the next one.
func (r *Registry) Update(hand *detector.HandLandmarks) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gateOpen := !hand.FingerExtended(detector.Pinky)

	for _, b := range r.bindings {
		if !b.Active {
			continue
		}

		switch b.Kind {
		case KindContinuous:
			if b.Continuous == nil {
				continue
			}
			value, ok := b.Continuous.Evaluate(hand)
			if !ok {
				continue
			}
			if r.OnValue != nil {
				r.OnValue(b.ID, value)
			}
			if b.Gated && !gateOpen {
				continue
			}
			if b.Out == nil {
				continue
			}
			if err := b.Out.Set(value, b.Channel, b.Controller); err != nil {
				log.Printf("binding %s: %v", b.Name, err)
			}

		case KindTrigger:
			current := b.Trigger != nil && b.Trigger.Evaluate(hand)
			if !b.edge.Update(current) {
				continue
			}
			if r.OnTrigger != nil {
				r.OnTrigger(b.ID, b.Name)
			}
			if b.Action == nil {
				continue
			}
			if err := b.Action.Fire(); err != nil {
				log.Printf("binding %s: %v", b.Name, err)
			}
		}
	}
}
