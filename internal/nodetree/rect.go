// Package nodetree models the rendered node tree the engine observes:
// block nodes, shared list wrappers, bounding geometry and structural
// traversal. It stands in for the host's real render tree so the
// windowing logic stays testable without one.
package nodetree

// Rect is the bounding box of a rendered node, in host layout units.
type Rect struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// IsDegenerate reports whether the rectangle reads as not-yet-laid-out.
// A node that has not been positioned by the host reports a zero top.
func (r Rect) IsDegenerate() bool {
	return r.Top == 0 && r.Height() == 0
}

// Intersects reports whether two rectangles overlap vertically. The
// viewport watchers only care about the vertical axis.
func (r Rect) Intersects(other Rect) bool {
	return r.Top < other.Bottom && r.Bottom > other.Top
}
