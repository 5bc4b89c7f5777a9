package gesture

import "github.com/ayusman/mudra/internal/detector"

// DefaultFistAspect is the width/height ratio below which a bounding box
// counts as a fist.
const DefaultFistAspect = 0.5

// Fist detects a closed fist from bounding-box proportions: a closed fist
// is markedly narrower than it is tall, so the box width must stay under
// AspectMax times its height. This is a cheap heuristic; narrow two-finger
// poses can satisfy it too, which is acceptable because bindings are
// user-chosen, not classified against each other.
type Fist struct {
	AspectMax float64
}

// NewFist creates a fist evaluator. Non-positive aspect falls back to the
// default.
func NewFist(aspectMax float64) *Fist {
	if aspectMax <= 0 {
		aspectMax = DefaultFistAspect
	}
	return &Fist{AspectMax: aspectMax}
}

// Evaluate reports whether the hand forms a fist.
func (f *Fist) Evaluate(hand *detector.HandLandmarks) bool {
	if !hand.Complete() {
		return false
	}

	box := hand.Bounds()
	if box.Height() <= 0 {
		return false
	}
	return box.Width() < f.AspectMax*box.Height()
}

// Pattern matches an exact per-finger extension truth table, thumb first.
type Pattern struct {
	Name string
	Want [5]bool
}

// Evaluate reports whether every finger matches the wanted pattern.
func (p *Pattern) Evaluate(hand *detector.HandLandmarks) bool {
	if !hand.Complete() {
		return false
	}
	return hand.FingersUp() == p.Want
}

// NewThumbsUp matches thumb extended with all other fingers folded.
func NewThumbsUp() *Pattern {
	return &Pattern{
		Name: "thumbs-up",
		Want: [5]bool{true, false, false, false, false},
	}
}

// NewVictory matches index and middle extended with thumb, ring and pinky
// folded.
func NewVictory() *Pattern {
	return &Pattern{
		Name: "victory",
		Want: [5]bool{false, true, true, false, false},
	}
}
