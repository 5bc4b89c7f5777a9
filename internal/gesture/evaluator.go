// Package gesture turns per-frame hand landmarks into control signals:
// continuous values in [0,1] and edge-triggered events.
package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// ContinuousEvaluator maps a landmark set to a normalized value in [0,1].
// The boolean result is false when the evaluator has no signal this frame
// (no hand, incomplete landmarks, or a reading outside its valid band).
// Evaluators may keep private smoothing state; one instance must serve
// exactly one binding.
type ContinuousEvaluator interface {
	Evaluate(hand *detector.HandLandmarks) (float64, bool)
}

// DiscreteEvaluator is a stateless pose predicate. Incomplete or absent
// landmark sets never match.
type DiscreteEvaluator interface {
	Evaluate(hand *detector.HandLandmarks) bool
}

// Default calibration for the pinch evaluator. Ratios are thumb-index
// distance divided by hand width, so they hold at any distance from the
// camera.
const (
	DefaultPinchMin        = 0.1
	DefaultPinchMax        = 1.0
	DefaultPinchHysteresis = 0.02
	DefaultMinHandWidth    = 40.0 // px
)

// Pinch measures the thumb-tip to index-tip distance, normalized by hand
// width. Readings are smoothed with a hysteresis band and held when the
// hand is too small to be reliable.
type Pinch struct {
	MinRatio     float64 // reading mapped to 0
	MaxRatio     float64 // reading mapped to 1
	Hysteresis   float64 // minimum ratio change to accept a new reading
	MinHandWidth float64 // px; below this the last reading is held

	lastRatio float64
	hasLast   bool
}

// NewPinch creates a pinch evaluator with the given calibration.
// Non-positive values fall back to the defaults.
func NewPinch(minRatio, maxRatio, hysteresis, minHandWidth float64) *Pinch {
	p := &Pinch{
		MinRatio:     minRatio,
		MaxRatio:     maxRatio,
		Hysteresis:   hysteresis,
		MinHandWidth: minHandWidth,
	}
	if p.MinRatio <= 0 {
		p.MinRatio = DefaultPinchMin
	}
	if p.MaxRatio <= p.MinRatio {
		p.MaxRatio = DefaultPinchMax
	}
	if p.Hysteresis <= 0 {
		p.Hysteresis = DefaultPinchHysteresis
	}
	if p.MinHandWidth <= 0 {
		p.MinHandWidth = DefaultMinHandWidth
	}
	return p
}

// Evaluate returns the normalized pinch value for the current frame.
//
// An incomplete landmark set yields no signal. A hand narrower than
// MinHandWidth holds the last accepted reading instead of emitting a noisy
// fresh one. A new reading is accepted only when it moves more than
// Hysteresis away from the last accepted one; otherwise the previous
// reading is reused, so consecutive jittery frames produce identical output.
func (p *Pinch) Evaluate(hand *detector.HandLandmarks) (float64, bool) {
	if !hand.Complete() {
		return 0, false
	}

	width := hand.Bounds().Width()
	if width < p.MinHandWidth {
		if !p.hasLast {
			return 0, false
		}
		return p.rescale(p.lastRatio), true
	}

	ratio := hand.Distance(detector.ThumbTip, detector.IndexTip) / width
	if p.hasLast && math.Abs(ratio-p.lastRatio) <= p.Hysteresis {
		ratio = p.lastRatio
	} else {
		p.lastRatio = ratio
		p.hasLast = true
	}

	return p.rescale(ratio), true
}

// rescale clamps a ratio into [MinRatio, MaxRatio] and maps it to [0,1].
func (p *Pinch) rescale(ratio float64) float64 {
	if ratio <= p.MinRatio {
		return 0
	}
	if ratio >= p.MaxRatio {
		return 1
	}
	return (ratio - p.MinRatio) / (p.MaxRatio - p.MinRatio)
}

// Default calibration for the area evaluator, in px²/100 of bounding-box
// area at 640×480 capture resolution.
const (
	DefaultAreaMin = 250.0
	DefaultAreaMax = 1000.0
)

// Area maps bounding-box size to [0,1]. Values outside the configured band
// mean the hand is too close, too far, or absent, and yield no signal.
type Area struct {
	MinArea float64 // px²/100, exclusive lower bound
	MaxArea float64 // px²/100, exclusive upper bound
}

// NewArea creates an area evaluator with the given band.
// Non-positive values fall back to the defaults.
func NewArea(minArea, maxArea float64) *Area {
	a := &Area{MinArea: minArea, MaxArea: maxArea}
	if a.MinArea <= 0 {
		a.MinArea = DefaultAreaMin
	}
	if a.MaxArea <= a.MinArea {
		a.MaxArea = DefaultAreaMax
	}
	return a
}

// Evaluate returns the normalized bounding-box area for the current frame.
func (a *Area) Evaluate(hand *detector.HandLandmarks) (float64, bool) {
	if !hand.Complete() {
		return 0, false
	}

	area := hand.Bounds().Area() / 100
	if area <= a.MinArea || area >= a.MaxArea {
		return 0, false
	}

	return (area - a.MinArea) / (a.MaxArea - a.MinArea), true
}
