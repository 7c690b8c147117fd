// Package engine owns the windowing state machine: it filters the
// document, selects the rendered window, and emits effect commands for
// the host to apply. All mutation happens through full recomputation;
// a new window state replaces the old one atomically.
package engine

import (
	"sync"

	"blockwin/internal/block"
	"blockwin/internal/config"
	"blockwin/internal/event"
	"blockwin/internal/window"
)

// Selection is the host editor's current text selection, reduced to
// its block endpoints.
type Selection struct {
	StartKey string
	EndKey   string
	HasFocus bool
}

// WindowRecomputed is the payload of event.TopicWindowRecomputed.
type WindowRecomputed struct {
	Indexes []int
	Focus   window.Focus
}

// FocusChanged is the payload of event.TopicFocusChanged.
type FocusChanged struct {
	Key       string
	Direction window.Direction
}

// Engine drives window recomputation. Transitions return the new state
// plus the effect commands the host must run, in order.
type Engine struct {
	mu sync.Mutex

	selector window.Selector
	bus      *event.Bus

	blocks    []block.Block
	filtered  []block.Filtered
	selection Selection

	state           window.State
	topOfPage       bool
	scrollSuspended bool
}

// New creates an engine with the given configuration. bus may be nil.
func New(cfg config.Config, bus *event.Bus) *Engine {
	cfg.Validate()
	return &Engine{
		selector:  window.NewSelector(cfg.MaxWindowSize, cfg.EdgeOffset),
		bus:       bus,
		topOfPage: true,
	}
}

// State returns the current window state.
func (e *Engine) State() window.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// TopOfPage reports whether the window is anchored at the first
// filtered block. The scroll clamp engages while it is not.
func (e *Engine) TopOfPage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.topOfPage
}

// ScrollSuspended reports whether intersection triggers are being
// ignored for a programmatic focus request.
func (e *Engine) ScrollSuspended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrollSuspended
}

// WindowBlocks resolves the current output indices to their filtered
// block wrappers, in emission order. This is the sequence the renderer
// consumes.
func (e *Engine) WindowBlocks() []block.Filtered {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.windowBlocksLocked()
}

func (e *Engine) windowBlocksLocked() []block.Filtered {
	if len(e.state.OutputIndexes) == 0 {
		return nil
	}
	byOriginal := make(map[int]block.Filtered, len(e.filtered))
	for _, f := range e.filtered {
		byOriginal[f.OriginalIndex] = f
	}
	out := make([]block.Filtered, 0, len(e.state.OutputIndexes))
	for _, idx := range e.state.OutputIndexes {
		if f, ok := byOriginal[idx]; ok {
			out = append(out, f)
		}
	}
	return out
}

// OnContentChanged replaces the document and recomputes around the
// retained focus. A focus block that no longer exists falls back to
// the no-focus window.
func (e *Engine) OnContentChanged(blocks []block.Block, sel Selection) (window.State, []Command) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.blocks = blocks
	e.selection = sel
	focus := e.state.CurrentFocus
	return e.recomputeLocked(focus.Key, focus.Direction)
}

// OnSelectionChanged recomputes with new selection endpoints, keeping
// the current focus.
func (e *Engine) OnSelectionChanged(sel Selection) (window.State, []Command) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.selection = sel
	focus := e.state.CurrentFocus
	return e.recomputeLocked(focus.Key, focus.Direction)
}

// OnIntersection handles a boundary trigger: the crossed block becomes
// the new focus. Triggers are ignored while observation is suspended
// for a programmatic focus request.
func (e *Engine) OnIntersection(dir window.Direction, key string) (window.State, []Command) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.scrollSuspended {
		return e.state, nil
	}
	return e.recomputeLocked(key, dir)
}

// OnFocusRequest handles an external scroll-to-block request. It
// suspends boundary observation until the target is confirmed present
// via ConfirmFocusTarget.
func (e *Engine) OnFocusRequest(key string) (window.State, []Command) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scrollSuspended = true
	state, cmds := e.recomputeLocked(key, window.DirectionFocus)
	e.state.FocusTargetKey = key
	state = e.state

	// Watchers stay down until the target block is confirmed; the
	// scroll command runs after the render commit.
	out := []Command{{Kind: CmdDetachWatchers}}
	out = append(out, renderOnly(cmds)...)
	out = append(out, Command{Kind: CmdScrollToKey, Key: key})
	return state, out
}

// ConfirmFocusTarget reports that the focus target is rendered and
// focused: observation resumes.
func (e *Engine) ConfirmFocusTarget() (window.State, []Command) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.scrollSuspended && e.state.FocusTargetKey == "" {
		return e.state, nil
	}
	e.scrollSuspended = false
	e.state.FocusTargetKey = ""
	return e.state, []Command{{Kind: CmdAttachWatchers}}
}

// recomputeLocked runs the filter and selector passes and replaces the
// window state wholesale. Callers hold the lock.
func (e *Engine) recomputeLocked(focusKey string, dir window.Direction) (window.State, []Command) {
	e.filtered = block.Filter(e.blocks)

	selStart, selEnd := "", ""
	if e.selection.HasFocus {
		selStart = e.selection.StartKey
		selEnd = e.selection.EndKey
	}

	indices, span := e.selector.SelectWindow(e.filtered, e.blocks, selStart, selEnd, focusKey)

	next := window.State{
		OutputIndexes:  indices,
		CurrentFocus:   window.Focus{Key: focusKey, Direction: dir},
		FocusTargetKey: e.state.FocusTargetKey,
		SliceStart:     span.Start,
		SliceEnd:       span.End,
	}

	changed := !next.Equal(e.state)
	focusChanged := next.CurrentFocus != e.state.CurrentFocus
	e.state = next
	e.topOfPage = span.Start == 0

	e.publishLocked(changed, focusChanged)

	if !changed {
		return e.state, nil
	}
	return e.state, []Command{
		{Kind: CmdDetachWatchers},
		{Kind: CmdRenderWindow, Direction: dir},
		{Kind: CmdAttachWatchers},
	}
}

// publishLocked emits bus notifications for a recompute.
func (e *Engine) publishLocked(changed, focusChanged bool) {
	if e.bus == nil {
		return
	}
	if changed {
		indexes := make([]int, len(e.state.OutputIndexes))
		copy(indexes, e.state.OutputIndexes)
		_ = e.bus.Publish(event.TopicWindowRecomputed, WindowRecomputed{
			Indexes: indexes,
			Focus:   e.state.CurrentFocus,
		})
	}
	if focusChanged {
		_ = e.bus.Publish(event.TopicFocusChanged, FocusChanged{
			Key:       e.state.CurrentFocus.Key,
			Direction: e.state.CurrentFocus.Direction,
		})
	}
}

// renderOnly keeps the render command from a transition's command list.
func renderOnly(cmds []Command) []Command {
	out := make([]Command, 0, 1)
	for _, c := range cmds {
		if c.Kind == CmdRenderWindow {
			out = append(out, c)
		}
	}
	return out
}
