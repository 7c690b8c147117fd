package observe

import (
	"sync"

	"blockwin/internal/nodetree"
	"blockwin/internal/window"
)

// State is the manager's observation state.
type State uint8

const (
	// StateIdle means no watchers are attached.
	StateIdle State = iota

	// StateObserving means both edge watchers are live.
	StateObserving

	// StateTriggered means an edge fired and the trigger is being
	// reported; the manager returns to Idle afterwards.
	StateTriggered
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateObserving:
		return "observing"
	case StateTriggered:
		return "triggered"
	default:
		return "unknown"
	}
}

// Trigger is an edge crossing report: the block key that entered the
// viewport and the boundary it crossed.
type Trigger struct {
	Key       string
	Direction window.Direction
}

// Callback receives edge triggers. It becomes the window selector's
// new focus.
type Callback func(Trigger)

// Manager owns the pair of edge watchers. All watcher churn goes
// through it so stale watchers are always unobserved before new ones
// are created.
type Manager struct {
	mu sync.Mutex

	newWatcher func() Watcher
	project    nodetree.Project
	edgeOffset int
	onTrigger  Callback

	state     State
	suspended bool

	top    *nodetree.Node
	bottom *nodetree.Node

	topWatcher    Watcher
	bottomWatcher Watcher
}

// NewManager creates a manager. newWatcher is invoked once per edge on
// every attach; edgeOffset is the block distance from the literal
// window edge to the observed block.
func NewManager(newWatcher func() Watcher, edgeOffset int, onTrigger Callback) *Manager {
	if edgeOffset < 0 {
		edgeOffset = 0
	}
	return &Manager{
		newWatcher: newWatcher,
		project:    nodetree.DefaultProject,
		edgeOffset: edgeOffset,
		onTrigger:  onTrigger,
	}
}

// SetProject overrides the content-node projection used to resolve
// boundary blocks.
func (m *Manager) SetProject(p nodetree.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p != nil {
		m.project = p
	}
}

// State returns the current observation state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ObservedEdges returns the currently observed top and bottom nodes.
func (m *Manager) ObservedEdges() (top, bottom *nodetree.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.top, m.bottom
}

// Attach resolves the boundary blocks inside the container and begins
// observing them, tearing down any previous watchers first. When either
// boundary is absent the manager stays Idle and returns ErrNoAnchor.
func (m *Manager) Attach(container *nodetree.Node) error {
	return m.attach(container, false)
}

// Reattach is Attach with a stale-tree guard: it refuses to re-observe
// while the newly-resolved boundary nodes are identical to the
// currently observed pair, which means the container's children do not
// yet reflect the latest index set.
func (m *Manager) Reattach(container *nodetree.Node) error {
	return m.attach(container, true)
}

func (m *Manager) attach(container *nodetree.Node, requireChange bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.suspended {
		return ErrSuspended
	}
	if container == nil {
		m.teardownLocked()
		m.state = StateIdle
		return ErrNoAnchor
	}

	top := nodetree.Advance(container.FirstChild(), m.edgeOffset, m.project, true)
	bottom := nodetree.Advance(container.LastChild(), m.edgeOffset, m.project, false)
	if top == nil || bottom == nil {
		m.teardownLocked()
		m.state = StateIdle
		return ErrNoAnchor
	}

	if requireChange && top == m.top && bottom == m.bottom {
		return ErrStaleDOM
	}

	m.teardownLocked()

	m.top = top
	m.bottom = bottom
	m.topWatcher = m.newWatcher()
	m.bottomWatcher = m.newWatcher()
	m.topWatcher.Observe(top, func(n *nodetree.Node) {
		m.fire(window.DirectionTop, n)
	})
	m.bottomWatcher.Observe(bottom, func(n *nodetree.Node) {
		m.fire(window.DirectionBottom, n)
	})
	m.state = StateObserving

	return nil
}

// fire handles a one-shot intersection: the fired watcher is
// disconnected immediately, then the trigger is reported.
func (m *Manager) fire(dir window.Direction, n *nodetree.Node) {
	m.mu.Lock()
	if m.suspended || m.state != StateObserving {
		m.mu.Unlock()
		return
	}

	switch dir {
	case window.DirectionTop:
		if m.topWatcher != nil {
			m.topWatcher.Disconnect()
			m.topWatcher = nil
		}
	case window.DirectionBottom:
		if m.bottomWatcher != nil {
			m.bottomWatcher.Disconnect()
			m.bottomWatcher = nil
		}
	}

	m.state = StateTriggered
	cb := m.onTrigger
	key := n.Key()
	m.mu.Unlock()

	if cb != nil {
		cb(Trigger{Key: key, Direction: dir})
	}

	m.mu.Lock()
	if m.state == StateTriggered {
		m.state = StateIdle
	}
	m.mu.Unlock()
}

// Suspend disconnects both watchers for a programmatic focus request.
// Observation stays off until Resume.
func (m *Manager) Suspend() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
	m.suspended = true
	m.state = StateIdle
}

// Suspended reports whether observation is suspended.
func (m *Manager) Suspended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suspended
}

// Resume lifts a suspension and re-attaches to the container.
func (m *Manager) Resume(container *nodetree.Node) error {
	m.mu.Lock()
	m.suspended = false
	m.mu.Unlock()
	return m.attach(container, false)
}

// Teardown disconnects both watchers and returns the manager to Idle.
func (m *Manager) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
	m.state = StateIdle
}

// teardownLocked unobserves and disconnects both watchers. Callers hold
// the lock.
func (m *Manager) teardownLocked() {
	if m.topWatcher != nil {
		if m.top != nil {
			m.topWatcher.Unobserve(m.top)
		}
		m.topWatcher.Disconnect()
		m.topWatcher = nil
	}
	if m.bottomWatcher != nil {
		if m.bottom != nil {
			m.bottomWatcher.Unobserve(m.bottom)
		}
		m.bottomWatcher.Disconnect()
		m.bottomWatcher = nil
	}
	m.top = nil
	m.bottom = nil
}
