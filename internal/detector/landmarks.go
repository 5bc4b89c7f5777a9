// Package detector provides hand detection interfaces and landmark geometry
// for the Mudra gesture controller.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Finger identifies one of the five fingers, thumb first.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
)

// fingerTips maps a Finger to its tip landmark index.
var fingerTips = [5]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// Point represents a landmark position in image pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandLandmarks represents the landmarks of one detected hand in image
// pixel coordinates. A well-formed hand carries exactly NumLandmarks points;
// anything shorter is treated as "no signal" by every consumer.
type HandLandmarks struct {
	Points     []Point `json:"points"`
	Handedness string  `json:"handedness"` // "Left" or "Right"
	Score      float64 `json:"score"`
}

// Complete reports whether the hand carries a full set of 21 landmarks.
// A nil receiver is not complete.
func (h *HandLandmarks) Complete() bool {
	return h != nil && len(h.Points) == NumLandmarks
}

// Distance returns the Euclidean distance between two landmark indices.
// Both indices must be in range; callers are expected to check Complete first.
func (h *HandLandmarks) Distance(i, j int) float64 {
	a, b := h.Points[i], h.Points[j]
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// BoundingBox is the axis-aligned extent of a set of landmarks.
type BoundingBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.XMax - b.XMin }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.YMax - b.YMin }

// Area returns Width×Height. Zero for a single point or an empty box.
func (b BoundingBox) Area() float64 { return b.Width() * b.Height() }

// Bounds computes the bounding box over all landmark points.
// Returns the zero box for a hand with no points.
func (h *HandLandmarks) Bounds() BoundingBox {
	if h == nil || len(h.Points) == 0 {
		return BoundingBox{}
	}

	box := BoundingBox{
		XMin: h.Points[0].X, XMax: h.Points[0].X,
		YMin: h.Points[0].Y, YMax: h.Points[0].Y,
	}
	for _, p := range h.Points[1:] {
		box.XMin = math.Min(box.XMin, p.X)
		box.XMax = math.Max(box.XMax, p.X)
		box.YMin = math.Min(box.YMin, p.Y)
		box.YMax = math.Max(box.YMax, p.Y)
	}
	return box
}

// FingerExtended reports whether the given finger tests as extended.
//
// The thumb is compared on the x axis against its IP joint because it moves
// laterally; the other four fingers are compared on the y axis against their
// PIP joint (tip above the joint in image coordinates means extended).
// The test assumes the mirrored view the flipped camera feed produces.
func (h *HandLandmarks) FingerExtended(f Finger) bool {
	if !h.Complete() {
		return false
	}

	tip := fingerTips[f]
	if f == Thumb {
		return h.Points[tip].X < h.Points[tip-1].X
	}
	return h.Points[tip].Y < h.Points[tip-2].Y
}

// FingersUp returns the extension state of all five fingers, thumb first.
// An incomplete hand reports all fingers folded.
func (h *HandLandmarks) FingersUp() [5]bool {
	var up [5]bool
	for f := Thumb; f <= Pinky; f++ {
		up[f] = h.FingerExtended(f)
	}
	return up
}
