package scroll

import (
	"blockwin/internal/nodetree"
	"blockwin/internal/window"
)

// Corrector captures the boundary block positions before a window
// recompute and applies a compensating scroll delta after the new tree
// is laid out, so the re-anchored window does not visibly jump.
type Corrector struct {
	scroller Scroller
	ticker   Ticker

	topBefore    nodetree.Rect
	bottomBefore nodetree.Rect
	snapshotted  bool
}

// NewCorrector creates a corrector bound to the host scroll container.
// ticker may be nil, in which case degenerate-layout retries are
// skipped.
func NewCorrector(scroller Scroller, ticker Ticker) *Corrector {
	return &Corrector{scroller: scroller, ticker: ticker}
}

// Snapshot records the bounding boxes of the current top and bottom
// observed nodes. Call immediately before the tree update that will
// move them. Nil nodes record degenerate boxes.
func (c *Corrector) Snapshot(top, bottom *nodetree.Node) {
	c.topBefore = nodetree.Rect{}
	c.bottomBefore = nodetree.Rect{}
	if top != nil {
		c.topBefore = top.Bounds()
	}
	if bottom != nil {
		c.bottomBefore = bottom.Bounds()
	}
	c.snapshotted = true
}

// Correct compares the new boundary positions against the snapshot and
// shifts the scroll offset by the difference. Only the edge named by
// the trigger direction is corrected; Focus and None directions apply
// no correction. A degenerate new rectangle defers the correction by
// one tick and retries once; if still degenerate the correction is
// silently skipped.
func (c *Corrector) Correct(dir window.Direction, top, bottom *nodetree.Node) {
	if !c.snapshotted || c.scroller == nil {
		return
	}
	c.snapshotted = false

	var node *nodetree.Node
	var before nodetree.Rect
	switch dir {
	case window.DirectionTop:
		node, before = top, c.topBefore
	case window.DirectionBottom:
		node, before = bottom, c.bottomBefore
	default:
		return
	}
	if node == nil || before.IsDegenerate() {
		return
	}

	c.apply(node, before, true)
}

// apply shifts the scroll offset by the node's movement since the
// snapshot. retry allows one deferred attempt when layout has not
// settled.
func (c *Corrector) apply(node *nodetree.Node, before nodetree.Rect, retry bool) {
	after := node.Bounds()
	if after.IsDegenerate() {
		if retry && c.ticker != nil {
			c.ticker.Defer(func() {
				c.apply(node, before, false)
			})
		}
		return
	}

	delta := after.Top - before.Top
	if delta == 0 {
		return
	}
	c.scroller.SetOffset(c.scroller.Offset() + delta)
}
