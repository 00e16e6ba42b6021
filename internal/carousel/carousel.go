// Package carousel positions catalog entries on a horizontal track and turns
// directional input into index changes.
package carousel

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("carousel: index out of range")
	ErrUnknownViewport = errors.New("carousel: unknown viewport class")
)

// Engine owns the selected index and viewport class. The zero value is not
// usable; construct with New.
type Engine struct {
	n       int
	index   int
	class   ViewportClass
	layouts LayoutTable
}

// State is a read-only view of the engine.
type State struct {
	Index  int
	Class  ViewportClass
	Layout Layout
	Offset float64
}

// New builds an engine over n items starting at index 0. A nil layouts table
// uses DefaultLayouts.
func New(n int, class ViewportClass, layouts LayoutTable) (*Engine, error) {
	if n < 1 {
		return nil, fmt.Errorf("carousel: need at least one item, got %d", n)
	}
	if layouts == nil {
		layouts = DefaultLayouts()
	}
	e := &Engine{n: n, layouts: layouts.Clone()}
	if err := e.SetViewportClass(class); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) Len() int             { return e.n }
func (e *Engine) Index() int           { return e.index }
func (e *Engine) Class() ViewportClass { return e.class }
func (e *Engine) Layout() Layout       { return e.layouts[e.class] }
func (e *Engine) AtStart() bool        { return e.index == 0 }
func (e *Engine) AtEnd() bool          { return e.index == e.n-1 }
func (e *Engine) Layouts() LayoutTable { return e.layouts.Clone() }

// MoveBy shifts the selection, clamped to the track. It never wraps and
// reports whether the index changed.
func (e *Engine) MoveBy(delta int) bool {
	var next int
	switch {
	case delta > e.n-1-e.index:
		next = e.n - 1
	case delta < -e.index:
		next = 0
	default:
		next = e.index + delta
	}
	if next == e.index {
		return false
	}
	e.index = next
	return true
}

// Select jumps straight to index. Out-of-range indexes are rejected, not
// clamped.
func (e *Engine) Select(index int) error {
	if index < 0 || index >= e.n {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, e.n)
	}
	e.index = index
	return nil
}

// SetViewportClass switches layout metrics; the selected index is kept.
func (e *Engine) SetViewportClass(class ViewportClass) error {
	if _, ok := e.layouts[class]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownViewport, class)
	}
	e.class = class
	return nil
}

// LayoutOffset is the track translation that centres the selected item:
// -(index*(width+gap) + width/2). It is derived on every call.
func (e *Engine) LayoutOffset() float64 {
	return OffsetFor(e.index, e.Layout())
}

// OffsetFor computes the centring offset for index under l.
func OffsetFor(index int, l Layout) float64 {
	return -(float64(index)*l.Pitch() + l.ItemWidth/2)
}

// ItemLeft is the left edge of item i relative to the viewport centre once
// the track has been translated by LayoutOffset.
func (e *Engine) ItemLeft(i int) float64 {
	return float64(i)*e.Layout().Pitch() + e.LayoutOffset()
}

// HitTest maps a horizontal position, measured from the viewport centre, to
// the item under it.
func (e *Engine) HitTest(x float64) (int, bool) {
	l := e.Layout()
	for i := 0; i < e.n; i++ {
		left := e.ItemLeft(i)
		if x >= left && x < left+l.ItemWidth {
			return i, true
		}
	}
	return 0, false
}

func (e *Engine) State() State {
	return State{
		Index:  e.index,
		Class:  e.class,
		Layout: e.Layout(),
		Offset: e.LayoutOffset(),
	}
}
