// Package window computes the bounded subset of document blocks that
// must be materialized for rendering, centered on a focus block.
package window

// Direction identifies which boundary (or explicit request) moved the
// window focus.
type Direction uint8

const (
	// DirectionNone means no focus has been established yet.
	DirectionNone Direction = iota

	// DirectionTop means the top boundary block entered the viewport.
	DirectionTop

	// DirectionBottom means the bottom boundary block entered the viewport.
	DirectionBottom

	// DirectionFocus means a programmatic scroll-to-block request.
	DirectionFocus
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionTop:
		return "top"
	case DirectionBottom:
		return "bottom"
	case DirectionFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// Focus is the block anchoring the window and how it got there.
type Focus struct {
	Key       string
	Direction Direction
}

// State is the full windowing result. It is replaced wholesale on every
// recompute; no incremental patching.
type State struct {
	// OutputIndexes are the original block indices to materialize, in
	// emission order: first-block marker, off-screen-above selection
	// markers, the contiguous slice ascending, off-screen-below
	// selection markers, last-block marker.
	OutputIndexes []int

	// CurrentFocus is the block key and direction that produced this
	// window.
	CurrentFocus Focus

	// FocusTargetKey is a pending programmatic scroll target, cleared
	// once the target block is rendered and focused.
	FocusTargetKey string

	// SliceStart and SliceEnd are the filtered-sequence positions of
	// the contiguous slice, for boundary bookkeeping.
	SliceStart int
	SliceEnd   int
}

// Equal reports whether two states would render the same window.
func (s State) Equal(other State) bool {
	if s.CurrentFocus != other.CurrentFocus ||
		s.FocusTargetKey != other.FocusTargetKey ||
		s.SliceStart != other.SliceStart ||
		s.SliceEnd != other.SliceEnd {
		return false
	}
	if len(s.OutputIndexes) != len(other.OutputIndexes) {
		return false
	}
	for i := range s.OutputIndexes {
		if s.OutputIndexes[i] != other.OutputIndexes[i] {
			return false
		}
	}
	return true
}

// Contains reports whether the state's output set includes the given
// original index.
func (s State) Contains(index int) bool {
	for _, idx := range s.OutputIndexes {
		if idx == index {
			return true
		}
	}
	return false
}

// IsTopOfPage reports whether the window is anchored at the true first
// filtered block.
func (s State) IsTopOfPage() bool {
	return s.SliceStart == 0
}
