package app

import (
	"testing"

	"blockwin/internal/engine"
	"blockwin/internal/observe"
	"blockwin/internal/window"
)

// newTestApp builds an application on the sample document with a fixed
// virtual viewport and no screen attached.
func newTestApp(t *testing.T) *Application {
	t.Helper()
	a, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(a.Shutdown)
	a.width = 80
	a.height = 21 // 20 body lines + status bar

	_, cmds := a.engine.OnContentChanged(a.doc.Blocks, engine.Selection{})
	a.applyCommands(cmds)
	return a
}

func TestInitialViewBuilt(t *testing.T) {
	a := newTestApp(t)

	state := a.engine.State()
	if len(a.lines) != len(state.OutputIndexes) {
		t.Errorf("laid out %d lines for %d window entries", len(a.lines), len(state.OutputIndexes))
	}
	if a.tree == nil || a.tree.Len() == 0 {
		t.Fatal("no node tree built")
	}
	if a.manager.State() != observe.StateObserving {
		t.Errorf("manager state = %v, want observing", a.manager.State())
	}

	top, bottom := a.manager.ObservedEdges()
	if top == nil || bottom == nil {
		t.Fatal("boundary nodes not resolved")
	}
	if top.Bounds().Top != float64(a.cfg.EdgeOffset) {
		t.Errorf("top edge at line %v, want %d", top.Bounds().Top, a.cfg.EdgeOffset)
	}
}

func TestScrollToBottomShiftsWindow(t *testing.T) {
	a := newTestApp(t)

	// Jump far past the end; the offset clamps to the last page and the
	// bottom watcher enters the viewport.
	a.scrollBy(1000)

	state := a.engine.State()
	if state.CurrentFocus.Direction != window.DirectionBottom {
		t.Errorf("focus direction = %v, want bottom", state.CurrentFocus.Direction)
	}
	if state.SliceStart == 0 {
		t.Error("window should have moved off the top")
	}
	if !state.Contains(0) {
		t.Error("first-block anchor missing after shift")
	}
}

func TestScrollWithinWindowKeepsFocus(t *testing.T) {
	a := newTestApp(t)

	a.scrollBy(1)

	state := a.engine.State()
	if state.CurrentFocus.Key != "" {
		t.Errorf("one-line scroll moved focus to %q", state.CurrentFocus.Key)
	}
}

func TestFocusEdgeEnd(t *testing.T) {
	a := newTestApp(t)

	a.focusEdge(false)

	if a.engine.ScrollSuspended() {
		t.Error("focus seek should be confirmed after scroll")
	}
	if a.engine.State().FocusTargetKey != "" {
		t.Error("focus target should be cleared after confirmation")
	}
	if a.offset == 0 {
		t.Error("viewport should have scrolled toward the target")
	}
}

func TestToggleVisibleSection(t *testing.T) {
	a := newTestApp(t)
	before := len(a.engine.State().OutputIndexes)

	// Line 0 is the title; line 1 is the first section header.
	a.toggleVisibleSection()

	if a.doc.Blocks[1].IsOpen() {
		t.Fatal("first section should be collapsed")
	}
	blocks := a.engine.WindowBlocks()
	if len(blocks) < 3 {
		t.Fatalf("window too small after collapse: %d", len(blocks))
	}
	if blocks[1].Key != "section1" || blocks[2].Key != "section2" {
		t.Errorf("window head = %q, %q; want adjacent section headers", blocks[1].Key, blocks[2].Key)
	}
	if len(a.engine.State().OutputIndexes) >= before {
		t.Error("collapsing a section should not grow the window")
	}

	// Toggling again restores the hidden blocks.
	a.toggleVisibleSection()
	if !a.doc.Blocks[1].IsOpen() {
		t.Error("second toggle should reopen the section")
	}
}

func TestSelectionEndpointsStayRendered(t *testing.T) {
	a := newTestApp(t)

	// Anchor the selection on a block a few lines down, then scroll far
	// past it.
	a.scrollBy(6)
	a.extendSelection()
	if a.selStart != "s1-p5" {
		t.Fatalf("selection anchored at %q, want s1-p5", a.selStart)
	}

	a.scrollBy(1000)

	state := a.engine.State()
	if state.SliceStart == 0 {
		t.Fatal("window should have moved off the top")
	}
	if !state.Contains(6) {
		t.Error("off-screen selection endpoint missing from window")
	}
	found := false
	for _, l := range a.lines {
		if l.key == "s1-p5" {
			found = true
		}
	}
	if !found {
		t.Error("selection endpoint has no rendered line")
	}

	a.clearSelection()
	if a.engine.State().Contains(6) {
		t.Error("cleared selection endpoint still rendered")
	}
}

func TestHiddenTailHasNoLine(t *testing.T) {
	a := newTestApp(t)

	// Collapsing the last section hides the document tail; the filter
	// force-includes it as a hidden block.
	idx := -1
	for i := range a.doc.Blocks {
		if a.doc.Blocks[i].Key == "section4" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("sample document missing section4")
	}
	a.doc.Blocks[idx].Data["isOpen"] = false
	_, cmds := a.engine.OnContentChanged(a.doc.Blocks, engine.Selection{})
	a.applyCommands(cmds)

	blocks := a.engine.WindowBlocks()
	tail := blocks[len(blocks)-1]
	if !tail.Hidden {
		t.Fatal("collapsed document tail should be force-included hidden")
	}

	n := a.tree.Find(tail.Key)
	if n == nil {
		t.Fatalf("hidden block %q missing from tree", tail.Key)
	}
	if !n.Bounds().IsDegenerate() {
		t.Errorf("hidden block %q was laid out", tail.Key)
	}
	for _, l := range a.lines {
		if l.key == tail.Key {
			t.Errorf("hidden block %q has a visible line", tail.Key)
		}
	}
}

func TestViewportWatcherOneShot(t *testing.T) {
	a := newTestApp(t)

	a.scrollBy(1000)
	focusAfterFirst := a.engine.State().CurrentFocus

	// The fired edge watcher is gone; scanning again without a new
	// attach must not re-trigger endlessly.
	a.scanWatchers()
	if got := a.engine.State().CurrentFocus; got != focusAfterFirst {
		// A second fire is allowed only through a fresh attach cycle.
		if a.manager.State() != observe.StateObserving {
			t.Errorf("focus churned without observation: %+v", got)
		}
	}
}

func TestClampWhileDetachedFromTop(t *testing.T) {
	a := newTestApp(t)
	a.scrollBy(1000)

	if a.engine.TopOfPage() {
		t.Skip("window unexpectedly still at top")
	}

	a.scrollBy(-10000)
	if a.offset < a.clamp.Threshold() {
		t.Errorf("offset %v below clamp threshold %v", a.offset, a.clamp.Threshold())
	}
}
