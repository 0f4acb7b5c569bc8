package selection

import (
	"image"
)

// State is the selector's position in the Idle -> Drawing -> Committed cycle.
type State int

const (
	// Idle means no rectangle is being drawn and none is committed.
	Idle State = iota
	// Drawing means a press started a rectangle that is not yet released.
	Drawing
	// Committed means at least one rectangle is stored.
	Committed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

// Selector collects rectangles drawn over an image of fixed bounds.
type Selector struct {
	bounds image.Rectangle
	state  State
	start  image.Point
	end    image.Point
	rects  []image.Rectangle
}

// NewSelector returns a selector for an image covering bounds.
func NewSelector(bounds image.Rectangle) *Selector {
	return &Selector{bounds: bounds.Canon()}
}

// State returns the current state.
func (s *Selector) State() State {
	return s.state
}

// PointerDown starts a new rectangle at p. A press while already drawing
// restarts the rectangle.
func (s *Selector) PointerDown(p image.Point) {
	s.start, s.end = p, p
	s.state = Drawing
}

// PointerMove updates the free corner of the rectangle being drawn. It is a
// no-op unless drawing.
func (s *Selector) PointerMove(p image.Point) {
	if s.state != Drawing {
		return
	}
	s.end = p
}

// PointerUp finishes the rectangle at p and commits it. It reports false
// when not drawing or when the normalized, clamped rectangle is empty.
func (s *Selector) PointerUp(p image.Point) (image.Rectangle, bool) {
	if s.state != Drawing {
		return image.Rectangle{}, false
	}
	s.end = p

	r := s.Current()
	if r.Empty() {
		s.settle()
		return image.Rectangle{}, false
	}

	s.rects = append(s.rects, r)
	s.state = Committed
	return r, true
}

// Cancel abandons the rectangle being drawn.
func (s *Selector) Cancel() {
	if s.state == Drawing {
		s.settle()
	}
}

// Current returns the rectangle being drawn, normalized and clamped to the
// image. It is empty when not drawing.
func (s *Selector) Current() image.Rectangle {
	if s.state != Drawing {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: s.start, Max: s.end}.Canon().Intersect(s.bounds)
}

// Rectangles returns a copy of the committed rectangles in commit order.
func (s *Selector) Rectangles() []image.Rectangle {
	out := make([]image.Rectangle, len(s.rects))
	copy(out, s.rects)
	return out
}

// Reset discards all rectangles and returns to Idle.
func (s *Selector) Reset() {
	s.rects = nil
	s.state = Idle
}

func (s *Selector) settle() {
	if len(s.rects) > 0 {
		s.state = Committed
	} else {
		s.state = Idle
	}
}
