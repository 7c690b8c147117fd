package app

import (
	"errors"
	"sync"

	"blockwin/internal/engine"
	"blockwin/internal/nodetree"
	"blockwin/internal/observe"
	"blockwin/internal/window"
)

// Offset returns the viewport scroll offset in lines.
func (a *Application) Offset() float64 {
	return a.offset
}

// SetOffset moves the viewport scroll offset.
func (a *Application) SetOffset(offset float64) {
	max := a.maxOffset()
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	a.offset = offset
}

// maxOffset is the largest line offset that keeps the viewport on
// content.
func (a *Application) maxOffset() float64 {
	max := float64(len(a.lines) - a.bodyHeight())
	if max < 0 {
		max = 0
	}
	return max
}

// bodyHeight is the viewport height in lines, excluding the status bar.
func (a *Application) bodyHeight() int {
	h := a.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

// scrollBy moves the viewport and runs the visibility scan that stands
// in for intersection observation.
func (a *Application) scrollBy(delta float64) {
	a.SetOffset(a.offset + delta)
	a.clamp.Apply()
	a.scanWatchers()
}

// deferTick queues a function for after the next draw.
func (a *Application) deferTick(fn func()) {
	a.deferred = append(a.deferred, fn)
}

// drainTicks runs queued deferred functions. Functions queued while
// draining run on the next drain.
func (a *Application) drainTicks() {
	pending := a.deferred
	a.deferred = nil
	for _, fn := range pending {
		fn()
	}
}

// viewportWatcher is the terminal's intersection watcher: observed
// nodes fire when their laid-out bounds transition into the viewport
// during a scan. A node already visible at Observe time does not fire
// until it leaves and re-enters.
type viewportWatcher struct {
	app *Application

	mu           sync.Mutex
	callbacks    map[*nodetree.Node]*watched
	disconnected bool
}

// watched is one observed node's callback and last-seen visibility.
type watched struct {
	fn      func(*nodetree.Node)
	visible bool
}

// newWatcher is the observe.Manager factory.
func (a *Application) newWatcher() observe.Watcher {
	w := &viewportWatcher{
		app:       a,
		callbacks: make(map[*nodetree.Node]*watched),
	}
	a.watchers[w] = struct{}{}
	return w
}

// Observe registers a node callback, seeding its visibility with the
// current viewport.
func (w *viewportWatcher) Observe(n *nodetree.Node, fn func(*nodetree.Node)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disconnected || n == nil || fn == nil {
		return
	}
	w.callbacks[n] = &watched{fn: fn, visible: w.app.nodeVisible(n)}
}

// Unobserve removes a node callback.
func (w *viewportWatcher) Unobserve(n *nodetree.Node) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.callbacks, n)
}

// Disconnect drops all callbacks and removes the watcher from the scan
// set.
func (w *viewportWatcher) Disconnect() {
	w.mu.Lock()
	w.disconnected = true
	w.callbacks = make(map[*nodetree.Node]*watched)
	w.mu.Unlock()

	delete(w.app.watchers, w)
}

// nodeVisible reports whether a laid-out node intersects the viewport.
func (a *Application) nodeVisible(n *nodetree.Node) bool {
	view := nodetree.Rect{Top: a.offset, Bottom: a.offset + float64(a.bodyHeight())}
	b := n.Bounds()
	return !b.IsDegenerate() && b.Intersects(view)
}

// scanWatchers fires callbacks for observed nodes that entered the
// viewport since the last scan. Hits are collected first; a firing
// callback tears down watchers mid-scan.
func (a *Application) scanWatchers() {
	type hit struct {
		node *nodetree.Node
		fn   func(*nodetree.Node)
	}
	var hits []hit
	for w := range a.watchers {
		w.mu.Lock()
		for n, wd := range w.callbacks {
			visible := a.nodeVisible(n)
			if visible && !wd.visible {
				hits = append(hits, hit{node: n, fn: wd.fn})
			}
			wd.visible = visible
		}
		w.mu.Unlock()
	}

	for _, h := range hits {
		h.fn(h.node)
	}
}

// onTrigger feeds a boundary crossing into the engine.
func (a *Application) onTrigger(t observe.Trigger) {
	_, cmds := a.engine.OnIntersection(t.Direction, t.Key)
	a.applyCommands(cmds)
}

// applyCommands runs the engine's effect commands in order.
func (a *Application) applyCommands(cmds []engine.Command) {
	for _, cmd := range cmds {
		switch cmd.Kind {
		case engine.CmdDetachWatchers:
			a.detachWatchers()
		case engine.CmdRenderWindow:
			a.renderWindow(cmd.Direction)
		case engine.CmdAttachWatchers:
			a.attachWatchers()
		case engine.CmdScrollToKey:
			a.scrollToKey(cmd.Key)
		}
	}
}

// detachWatchers snapshots the boundary positions, then tears the
// watchers down ahead of the tree rebuild.
func (a *Application) detachWatchers() {
	top, bottom := a.manager.ObservedEdges()
	a.prevTopKey, a.prevBottomKey = "", ""
	if top != nil {
		a.prevTopKey = top.Key()
	}
	if bottom != nil {
		a.prevBottomKey = bottom.Key()
	}
	a.corrector.Snapshot(top, bottom)
	a.manager.Teardown()
}

// renderWindow rebuilds the view from the engine's window and applies
// the scroll continuity correction for the moved edge.
func (a *Application) renderWindow(dir window.Direction) {
	a.rebuildView()

	var newTop, newBottom *nodetree.Node
	if a.tree != nil {
		newTop = a.tree.Find(a.prevTopKey)
		newBottom = a.tree.Find(a.prevBottomKey)
	}
	a.corrector.Correct(dir, newTop, newBottom)

	a.clamp.SetTopOfPage(a.engine.TopOfPage())
	a.clamp.SetThreshold(a.windowFloor())
	a.clamp.Apply()
	a.SetOffset(a.offset)
}

// attachWatchers re-attaches the boundary watchers to the rebuilt tree.
// A stale tree retries once on the next tick.
func (a *Application) attachWatchers() {
	if a.tree == nil {
		return
	}
	err := a.manager.Reattach(a.tree.Root())
	if errors.Is(err, observe.ErrStaleDOM) {
		a.deferTick(func() {
			_ = a.manager.Attach(a.tree.Root())
		})
	}
}

// scrollToKey brings a block's line to the top margin of the viewport
// and confirms the focus target with the engine.
func (a *Application) scrollToKey(key string) {
	if a.tree != nil {
		if n := a.tree.Find(key); n != nil && !n.Bounds().IsDegenerate() {
			a.SetOffset(n.Bounds().Top)
		}
	}
	_, cmds := a.engine.ConfirmFocusTarget()
	a.applyCommands(cmds)
	a.scanWatchers()
}

// windowFloor is the scroll floor while detached from the top of the
// page: the top of the first sliced block, past the leading anchor
// line.
func (a *Application) windowFloor() float64 {
	if a.engine.TopOfPage() || a.tree == nil {
		return 0
	}
	blocks := a.engine.WindowBlocks()
	if len(blocks) < 2 {
		return 0
	}
	n := a.tree.Find(blocks[1].Key)
	if n == nil || n.Bounds().IsDegenerate() {
		return 0
	}
	return n.Bounds().Top
}
