package carousel

import (
	"fmt"
	"strings"
)

// ViewportClass is the breakpoint bucket the carousel is laid out for.
type ViewportClass string

const (
	Compact ViewportClass = "compact"
	Wide    ViewportClass = "wide"
)

// ParseViewportClass accepts a class name in any case.
func ParseViewportClass(s string) (ViewportClass, error) {
	c := ViewportClass(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Compact, Wide:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownViewport, s)
}

// Layout holds the per-class track metrics, in distance units.
type Layout struct {
	ItemWidth float64
	ItemGap   float64
}

// Pitch is the distance between the left edges of neighbouring items.
func (l Layout) Pitch() float64 { return l.ItemWidth + l.ItemGap }

// LayoutTable maps each viewport class to its metrics. New breakpoints are
// added here, not in the offset math.
type LayoutTable map[ViewportClass]Layout

// DefaultLayouts mirror a 256/32 card track on narrow screens and 320/96 on
// wide ones.
func DefaultLayouts() LayoutTable {
	return LayoutTable{
		Compact: {ItemWidth: 256, ItemGap: 32},
		Wide:    {ItemWidth: 320, ItemGap: 96},
	}
}

// Clone returns an independent copy.
func (t LayoutTable) Clone() LayoutTable {
	out := make(LayoutTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// ClassForWidth buckets a measured viewport width: anything at or above
// breakpoint is Wide.
func ClassForWidth(width, breakpoint float64) ViewportClass {
	if width >= breakpoint {
		return Wide
	}
	return Compact
}
