package detector

import (
	"math"
	"testing"
)

func TestHandLandmarks_Complete(t *testing.T) {
	var nilHand *HandLandmarks
	if nilHand.Complete() {
		t.Error("nil hand should not be complete")
	}

	short := &HandLandmarks{Points: make([]Point, 5)}
	if short.Complete() {
		t.Error("hand with 5 points should not be complete")
	}

	full := OpenPalmLandmarks()
	if !full.Complete() {
		t.Error("hand with 21 points should be complete")
	}
}

func TestHandLandmarks_Distance(t *testing.T) {
	hand := HandLandmarks{Points: make([]Point, NumLandmarks)}
	hand.Points[ThumbTip] = Point{X: 0, Y: 0}
	hand.Points[IndexTip] = Point{X: 3, Y: 4}

	if got := hand.Distance(ThumbTip, IndexTip); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := hand.Distance(ThumbTip, ThumbTip); got != 0 {
		t.Errorf("self distance = %v, want 0", got)
	}
}

func TestHandLandmarks_Bounds(t *testing.T) {
	hand := HandLandmarks{Points: make([]Point, NumLandmarks)}
	for i := range hand.Points {
		hand.Points[i] = Point{X: 50, Y: 60}
	}
	hand.Points[0] = Point{X: 10, Y: 20}
	hand.Points[1] = Point{X: 110, Y: 220}

	box := hand.Bounds()
	if box.Width() != 100 {
		t.Errorf("Width = %v, want 100", box.Width())
	}
	if box.Height() != 200 {
		t.Errorf("Height = %v, want 200", box.Height())
	}
	if box.Area() != box.Width()*box.Height() {
		t.Errorf("Area = %v, want Width*Height = %v", box.Area(), box.Width()*box.Height())
	}
	if box.Area() < 0 {
		t.Error("Area should never be negative")
	}
}

func TestHandLandmarks_BoundsEmpty(t *testing.T) {
	var nilHand *HandLandmarks
	if box := nilHand.Bounds(); box != (BoundingBox{}) {
		t.Errorf("nil hand bounds = %+v, want zero box", box)
	}

	empty := &HandLandmarks{}
	if box := empty.Bounds(); box.Area() != 0 {
		t.Errorf("empty hand area = %v, want 0", box.Area())
	}

	single := &HandLandmarks{Points: []Point{{X: 5, Y: 5}}}
	if box := single.Bounds(); box.Area() != 0 {
		t.Errorf("single point area = %v, want 0", box.Area())
	}
}

func TestFingersUp(t *testing.T) {
	tests := []struct {
		name string
		hand HandLandmarks
		want [5]bool
	}{
		{"open palm", OpenPalmLandmarks(), [5]bool{true, true, true, true, true}},
		{"fist", FistLandmarks(), [5]bool{false, false, false, false, false}},
		{"thumbs up", ThumbsUpLandmarks(), [5]bool{true, false, false, false, false}},
		{"victory", VictoryLandmarks(), [5]bool{false, true, true, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hand.FingersUp(); got != tt.want {
				t.Errorf("FingersUp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFingersUp_IncompleteHand(t *testing.T) {
	short := HandLandmarks{Points: make([]Point, 5)}
	if got := short.FingersUp(); got != [5]bool{} {
		t.Errorf("incomplete hand FingersUp() = %v, want all folded", got)
	}
}

func TestBounds_ContainsAllPoints(t *testing.T) {
	hand := OpenPalmLandmarks()
	box := hand.Bounds()

	for i, p := range hand.Points {
		if p.X < box.XMin || p.X > box.XMax || p.Y < box.YMin || p.Y > box.YMax {
			t.Errorf("point %d (%v) falls outside bounds %+v", i, p, box)
		}
	}
}

func TestDistance_MatchesHypot(t *testing.T) {
	hand := OpenPalmLandmarks()
	a, b := hand.Points[Wrist], hand.Points[MiddleTip]

	want := math.Hypot(b.X-a.X, b.Y-a.Y)
	if got := hand.Distance(Wrist, MiddleTip); got != want {
		t.Errorf("Distance = %v, want %v", got, want)
	}
}
