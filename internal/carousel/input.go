package carousel

import "math"

// Direction is the way the user pushed: a leftward push brings the next
// item in from the right.
type Direction int

const (
	Left Direction = iota + 1
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// Delta is the index change a push in d produces.
func (d Direction) Delta() int {
	switch d {
	case Left:
		return 1
	case Right:
		return -1
	}
	return 0
}

// DefaultSwipeThreshold is the horizontal travel a drag must exceed to
// count as navigation.
const DefaultSwipeThreshold = 50.0

// Swipe recognises horizontal drags. Smaller movements are noise.
type Swipe struct {
	Threshold float64

	startX float64
	active bool
}

func NewSwipe(threshold float64) *Swipe {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Swipe{Threshold: threshold}
}

// Begin records the gesture start.
func (s *Swipe) Begin(x float64) {
	s.startX = x
	s.active = true
}

// Active reports whether a gesture is in progress.
func (s *Swipe) Active() bool { return s.active }

// Cancel drops the in-progress gesture.
func (s *Swipe) Cancel() { s.active = false }

// End closes the gesture at x. A right-to-left drag is Left.
func (s *Swipe) End(x float64) (Direction, bool) {
	if !s.active {
		return 0, false
	}
	s.active = false
	return Classify(s.startX-x, s.Threshold)
}

// Classify turns a start-minus-end displacement into a direction when its
// magnitude exceeds threshold.
func Classify(displacement, threshold float64) (Direction, bool) {
	if math.Abs(displacement) <= threshold {
		return 0, false
	}
	if displacement > 0 {
		return Left, true
	}
	return Right, true
}
