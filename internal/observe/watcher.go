// Package observe owns the boundary watchers that detect when the
// rendered window must move: one viewport-intersection watcher per
// window edge, attached to the Nth block inside that edge.
package observe

import (
	"sync"

	"blockwin/internal/nodetree"
)

// Watcher is the viewport-intersection primitive. Production hosts
// bind it to their viewport-observation facility; tests bind a
// ManualWatcher.
type Watcher interface {
	// Observe starts watching a node. fn is invoked when the node
	// intersects the viewport.
	Observe(n *nodetree.Node, fn func(*nodetree.Node))

	// Unobserve stops watching a node.
	Unobserve(n *nodetree.Node)

	// Disconnect stops watching everything and releases the watcher.
	Disconnect()
}

// ManualWatcher is a Watcher fired explicitly from tests or from hosts
// that poll visibility themselves.
type ManualWatcher struct {
	mu           sync.Mutex
	callbacks    map[*nodetree.Node]func(*nodetree.Node)
	disconnected bool
}

// NewManualWatcher creates an idle manual watcher.
func NewManualWatcher() *ManualWatcher {
	return &ManualWatcher{
		callbacks: make(map[*nodetree.Node]func(*nodetree.Node)),
	}
}

// Observe registers a callback for the node.
func (w *ManualWatcher) Observe(n *nodetree.Node, fn func(*nodetree.Node)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.disconnected || n == nil || fn == nil {
		return
	}
	w.callbacks[n] = fn
}

// Unobserve removes the node's callback.
func (w *ManualWatcher) Unobserve(n *nodetree.Node) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.callbacks, n)
}

// Disconnect drops all callbacks; further Observe calls are ignored.
func (w *ManualWatcher) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.disconnected = true
	w.callbacks = make(map[*nodetree.Node]func(*nodetree.Node))
}

// Trigger fires the callback for the node, if observed. Returns true
// when a callback ran.
func (w *ManualWatcher) Trigger(n *nodetree.Node) bool {
	w.mu.Lock()
	fn, ok := w.callbacks[n]
	w.mu.Unlock()

	if !ok {
		return false
	}
	fn(n)
	return true
}

// Observing reports whether the node is currently watched.
func (w *ManualWatcher) Observing(n *nodetree.Node) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.callbacks[n]
	return ok
}

// Disconnected reports whether Disconnect has been called.
func (w *ManualWatcher) Disconnected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disconnected
}
