package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// newHand builds a HandLandmarks from an index-ordered point table.
func newHand(points [NumLandmarks]Point) HandLandmarks {
	return HandLandmarks{
		Points:     points[:],
		Handedness: "Right",
		Score:      0.95,
	}
}

// OpenPalmLandmarks returns a preset hand with all five fingers extended,
// roughly centered in a 640×480 frame.
func OpenPalmLandmarks() HandLandmarks {
	return newHand([NumLandmarks]Point{
		Wrist: {320, 400},

		ThumbCMC: {280, 380}, ThumbMCP: {260, 360}, ThumbIP: {240, 350}, ThumbTip: {220, 340},

		IndexMCP: {300, 300}, IndexPIP: {300, 260}, IndexDIP: {300, 230}, IndexTip: {300, 200},

		MiddleMCP: {320, 300}, MiddlePIP: {320, 255}, MiddleDIP: {320, 220}, MiddleTip: {320, 185},

		RingMCP: {340, 300}, RingPIP: {340, 260}, RingDIP: {340, 230}, RingTip: {340, 205},

		PinkyMCP: {360, 305}, PinkyPIP: {360, 275}, PinkyDIP: {360, 250}, PinkyTip: {360, 225},
	})
}

// FistLandmarks returns a preset closed fist: every finger folded and the
// bounding box clearly narrower than tall.
func FistLandmarks() HandLandmarks {
	return newHand([NumLandmarks]Point{
		Wrist: {330, 400},

		ThumbCMC: {310, 380}, ThumbMCP: {305, 365}, ThumbIP: {300, 355}, ThumbTip: {310, 350},

		IndexMCP: {315, 300}, IndexPIP: {315, 285}, IndexDIP: {315, 295}, IndexTip: {315, 310},

		MiddleMCP: {330, 295}, MiddlePIP: {330, 280}, MiddleDIP: {330, 292}, MiddleTip: {330, 308},

		RingMCP: {345, 300}, RingPIP: {345, 285}, RingDIP: {345, 295}, RingTip: {345, 310},

		PinkyMCP: {352, 305}, PinkyPIP: {352, 292}, PinkyDIP: {352, 300}, PinkyTip: {352, 312},
	})
}

// ThumbsUpLandmarks returns a preset hand with the thumb extended laterally
// and the other four fingers folded.
func ThumbsUpLandmarks() HandLandmarks {
	return newHand([NumLandmarks]Point{
		Wrist: {330, 400},

		ThumbCMC: {310, 380}, ThumbMCP: {295, 360}, ThumbIP: {285, 345}, ThumbTip: {270, 330},

		IndexMCP: {315, 300}, IndexPIP: {315, 285}, IndexDIP: {315, 295}, IndexTip: {315, 310},

		MiddleMCP: {330, 295}, MiddlePIP: {330, 280}, MiddleDIP: {330, 292}, MiddleTip: {330, 308},

		RingMCP: {345, 300}, RingPIP: {345, 285}, RingDIP: {345, 295}, RingTip: {345, 310},

		PinkyMCP: {352, 305}, PinkyPIP: {352, 292}, PinkyDIP: {352, 300}, PinkyTip: {352, 312},
	})
}

// VictoryLandmarks returns a preset peace sign: index and middle extended,
// thumb, ring and pinky folded.
func VictoryLandmarks() HandLandmarks {
	return newHand([NumLandmarks]Point{
		Wrist: {330, 400},

		ThumbCMC: {310, 380}, ThumbMCP: {305, 365}, ThumbIP: {300, 355}, ThumbTip: {310, 350},

		IndexMCP: {310, 300}, IndexPIP: {300, 260}, IndexDIP: {295, 230}, IndexTip: {290, 200},

		MiddleMCP: {330, 295}, MiddlePIP: {340, 255}, MiddleDIP: {348, 225}, MiddleTip: {355, 195},

		RingMCP: {345, 300}, RingPIP: {345, 285}, RingDIP: {345, 295}, RingTip: {345, 310},

		PinkyMCP: {352, 305}, PinkyPIP: {352, 292}, PinkyDIP: {352, 300}, PinkyTip: {352, 312},
	})
}

// PinchLandmarks returns a hand whose thumb tip sits at (100,100) and index
// tip dist pixels to its right, with the bounding-box x-extent anchored at
// exactly 200 px and the pinky folded so the dispatch gate is open.
// dist must be within [0, 200].
func PinchLandmarks(dist float64) HandLandmarks {
	return newHand([NumLandmarks]Point{
		Wrist: {200, 300},

		ThumbCMC: {160, 200}, ThumbMCP: {140, 150}, ThumbIP: {120, 120}, ThumbTip: {100, 100},

		IndexMCP: {180, 210}, IndexPIP: {170, 170}, IndexDIP: {160, 140}, IndexTip: {100 + dist, 100},

		MiddleMCP: {210, 205}, MiddlePIP: {215, 190}, MiddleDIP: {215, 200}, MiddleTip: {215, 210},

		RingMCP: {240, 210}, RingPIP: {240, 195}, RingDIP: {240, 205}, RingTip: {240, 215},

		PinkyMCP: {300, 280}, PinkyPIP: {295, 270}, PinkyDIP: {295, 278}, PinkyTip: {295, 285},
	})
}
