package window

import (
	"blockwin/internal/block"
)

// Defaults for the rendering window.
const (
	// DefaultMaxWindow is the default bounded window size in blocks.
	DefaultMaxWindow = 50

	// DefaultEdgeOffset is the default buffer (in blocks) between the
	// literal window boundary and the observed boundary block.
	DefaultEdgeOffset = 4
)

// Span is the contiguous slice of the filtered sequence covered by a
// selection pass, in filtered positions (inclusive).
type Span struct {
	Start int
	End   int
}

// Selector computes the set of original block indices to materialize.
// It is a pure function of its inputs: identical inputs always yield
// identical output.
type Selector struct {
	// MaxWindow bounds the contiguous slice size.
	MaxWindow int

	// EdgeOffset keeps the observed boundary block away from the
	// literal window edge.
	EdgeOffset int
}

// NewSelector creates a selector, substituting defaults for
// non-positive window sizes and negative offsets.
func NewSelector(maxWindow, edgeOffset int) Selector {
	if maxWindow <= 0 {
		maxWindow = DefaultMaxWindow
	}
	if edgeOffset < 0 {
		edgeOffset = DefaultEdgeOffset
	}
	return Selector{MaxWindow: maxWindow, EdgeOffset: edgeOffset}
}

// Select returns the original indices that must be rendered for the
// given filtered sequence, selection endpoints and focus key. See
// SelectWindow for the emission contract.
func (s Selector) Select(filtered []block.Filtered, full []block.Block, selStartKey, selEndKey, focusKey string) []int {
	indices, _ := s.SelectWindow(filtered, full, selStartKey, selEndKey, focusKey)
	return indices
}

// SelectWindow computes the window and also reports the covered span of
// filtered positions.
//
// Emission order: first-block marker, off-screen-above selection
// markers, the contiguous slice in ascending order, off-screen-below
// selection markers, last-block marker. Duplicates are suppressed while
// preserving that order.
//
// A focus key that does not resolve within the filtered sequence (no
// focus yet, or the focused block was deleted or collapsed away) falls
// back to the first MaxWindow filtered entries.
func (s Selector) SelectWindow(filtered []block.Filtered, full []block.Block, selStartKey, selEndKey, focusKey string) ([]int, Span) {
	n := len(filtered)
	if n == 0 {
		return nil, Span{}
	}

	lastOriginal := len(full) - 1
	if lastOriginal < 0 {
		lastOriginal = filtered[n-1].OriginalIndex
	}

	var start, end int
	if focusPos := block.IndexOfFiltered(filtered, focusKey); focusPos < 0 {
		start = 0
		end = s.MaxWindow - 1
	} else {
		half := s.MaxWindow / 2
		start = focusPos - half - s.EdgeOffset
		end = focusPos + half + s.EdgeOffset
		if start < 0 {
			// Shift the whole slice down so it starts at zero.
			end -= start
			start = 0
		}
	}
	if end > n-1 {
		end = n - 1
		start = end - s.MaxWindow
		if start < 0 {
			start = 0
		}
	}

	startOrig := filtered[start].OriginalIndex
	endOrig := filtered[end].OriginalIndex
	selStart := originalIndexOf(filtered, selStartKey)
	selEnd := originalIndexOf(filtered, selEndKey)

	out := make([]int, 0, end-start+5)
	seen := make(map[int]struct{}, end-start+5)
	emit := func(idx int) {
		if _, dup := seen[idx]; dup {
			return
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}

	if start > 0 {
		emit(0)
	}
	if selStart > 0 && selStart < startOrig {
		emit(selStart)
	}
	if selEnd > 0 && selEnd < startOrig {
		emit(selEnd)
	}
	for i := start; i <= end; i++ {
		emit(filtered[i].OriginalIndex)
	}
	if selStart >= 0 && selStart > endOrig && selStart != lastOriginal {
		emit(selStart)
	}
	if selEnd >= 0 && selEnd > endOrig && selEnd != lastOriginal {
		emit(selEnd)
	}
	if end < n-1 {
		emit(lastOriginal)
	}

	return out, Span{Start: start, End: end}
}

// originalIndexOf resolves a key to its original index via the filtered
// sequence. Keys inside collapsed sections do not resolve; per the
// selection contract they are treated as "selection does not exist".
func originalIndexOf(filtered []block.Filtered, key string) int {
	pos := block.IndexOfFiltered(filtered, key)
	if pos < 0 {
		return -1
	}
	return filtered[pos].OriginalIndex
}
