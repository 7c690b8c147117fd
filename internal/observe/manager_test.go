package observe

import (
	"fmt"
	"testing"

	"blockwin/internal/nodetree"
	"blockwin/internal/window"
)

// testContainer builds a container with n block children and returns it
// with the nodes.
func testContainer(n int) (*nodetree.Tree, []*nodetree.Node) {
	tree := nodetree.NewTree()
	nodes := make([]*nodetree.Node, n)
	for i := 0; i < n; i++ {
		node := nodetree.NewBlockNode(fmt.Sprintf("b%d", i), i)
		tree.Root().AppendChild(node)
		tree.Register(node)
		nodes[i] = node
	}
	return tree, nodes
}

// watcherFactory hands out ManualWatchers and remembers them in
// creation order.
type watcherFactory struct {
	created []*ManualWatcher
}

func (f *watcherFactory) new() Watcher {
	w := NewManualWatcher()
	f.created = append(f.created, w)
	return w
}

func TestManagerAttachObservesEdges(t *testing.T) {
	tree, nodes := testContainer(20)
	f := &watcherFactory{}
	m := NewManager(f.new, 4, nil)

	if err := m.Attach(tree.Root()); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if m.State() != StateObserving {
		t.Errorf("state = %v, want observing", m.State())
	}

	top, bottom := m.ObservedEdges()
	if top != nodes[4] {
		t.Errorf("top edge = %v, want b4", top.Key())
	}
	if bottom != nodes[15] {
		t.Errorf("bottom edge = %v, want b15", bottom.Key())
	}
	if len(f.created) != 2 {
		t.Errorf("expected 2 watchers, got %d", len(f.created))
	}
}

func TestManagerAttachNoAnchorStaysIdle(t *testing.T) {
	tree, _ := testContainer(3) // too few blocks for edge offset 4
	f := &watcherFactory{}
	m := NewManager(f.new, 4, nil)

	if err := m.Attach(tree.Root()); err != ErrNoAnchor {
		t.Fatalf("Attach = %v, want ErrNoAnchor", err)
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
	if len(f.created) != 0 {
		t.Errorf("no watchers should be created, got %d", len(f.created))
	}
}

func TestManagerAttachNilContainer(t *testing.T) {
	f := &watcherFactory{}
	m := NewManager(f.new, 4, nil)

	if err := m.Attach(nil); err != ErrNoAnchor {
		t.Errorf("Attach(nil) = %v, want ErrNoAnchor", err)
	}
}

func TestManagerTriggerIsOneShot(t *testing.T) {
	tree, nodes := testContainer(20)
	f := &watcherFactory{}

	var got []Trigger
	m := NewManager(f.new, 4, func(tr Trigger) { got = append(got, tr) })

	if err := m.Attach(tree.Root()); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	topWatcher := f.created[0]
	if !topWatcher.Trigger(nodes[4]) {
		t.Fatal("top watcher did not fire")
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 trigger, got %d", len(got))
	}
	if got[0].Key != "b4" || got[0].Direction != window.DirectionTop {
		t.Errorf("trigger = %+v, want {b4 top}", got[0])
	}
	if !topWatcher.Disconnected() {
		t.Error("fired watcher must be disconnected (one-shot)")
	}
	if m.State() != StateIdle {
		t.Errorf("state after trigger = %v, want idle", m.State())
	}

	// A second fire on the same watcher is a ghost trigger and must be
	// swallowed.
	topWatcher.Trigger(nodes[4])
	if len(got) != 1 {
		t.Errorf("ghost trigger delivered: %d triggers", len(got))
	}
}

func TestManagerBottomTrigger(t *testing.T) {
	tree, nodes := testContainer(20)
	f := &watcherFactory{}

	var got []Trigger
	m := NewManager(f.new, 4, func(tr Trigger) { got = append(got, tr) })

	if err := m.Attach(tree.Root()); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	f.created[1].Trigger(nodes[15])

	if len(got) != 1 || got[0].Direction != window.DirectionBottom || got[0].Key != "b15" {
		t.Errorf("triggers = %+v, want one {b15 bottom}", got)
	}
}

func TestManagerReattachTearsDownPreviousWatchers(t *testing.T) {
	tree, _ := testContainer(20)
	f := &watcherFactory{}
	m := NewManager(f.new, 4, nil)

	if err := m.Attach(tree.Root()); err != nil {
		t.Fatalf("first Attach failed: %v", err)
	}

	// Simulate a window shift: the container gets different children.
	tree2, _ := testContainer(30)
	if err := m.Attach(tree2.Root()); err != nil {
		t.Fatalf("second Attach failed: %v", err)
	}

	if !f.created[0].Disconnected() || !f.created[1].Disconnected() {
		t.Error("previous watchers must be disconnected before re-observing")
	}
	if len(f.created) != 4 {
		t.Errorf("expected 4 watchers total, got %d", len(f.created))
	}
}

func TestManagerReattachStaleTree(t *testing.T) {
	tree, _ := testContainer(20)
	f := &watcherFactory{}
	m := NewManager(f.new, 4, nil)

	if err := m.Attach(tree.Root()); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Same container, same children: the tree has not been re-rendered
	// yet, so re-observing must be refused.
	if err := m.Reattach(tree.Root()); err != ErrStaleDOM {
		t.Errorf("Reattach on stale tree = %v, want ErrStaleDOM", err)
	}
	if m.State() != StateObserving {
		t.Errorf("state = %v, want observing (old watchers kept)", m.State())
	}

	// After a real re-render the boundary nodes differ and Reattach
	// succeeds.
	tree2, _ := testContainer(20)
	if err := m.Reattach(tree2.Root()); err != nil {
		t.Errorf("Reattach on fresh tree = %v", err)
	}
}

func TestManagerSuspendResume(t *testing.T) {
	tree, nodes := testContainer(20)
	f := &watcherFactory{}

	var got []Trigger
	m := NewManager(f.new, 4, func(tr Trigger) { got = append(got, tr) })

	if err := m.Attach(tree.Root()); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	m.Suspend()
	if !m.Suspended() {
		t.Error("expected suspended")
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle while suspended", m.State())
	}
	if !f.created[0].Disconnected() || !f.created[1].Disconnected() {
		t.Error("suspend must disconnect both watchers")
	}

	// Attach while suspended is refused.
	if err := m.Attach(tree.Root()); err != ErrSuspended {
		t.Errorf("Attach while suspended = %v, want ErrSuspended", err)
	}

	// Triggers from already-fired callbacks are ignored while
	// suspended.
	f.created[0].Trigger(nodes[4])
	if len(got) != 0 {
		t.Errorf("trigger delivered while suspended: %+v", got)
	}

	if err := m.Resume(tree.Root()); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if m.State() != StateObserving {
		t.Errorf("state after resume = %v, want observing", m.State())
	}
}

func TestManagerTeardown(t *testing.T) {
	tree, _ := testContainer(20)
	f := &watcherFactory{}
	m := NewManager(f.new, 4, nil)

	if err := m.Attach(tree.Root()); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	m.Teardown()
	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
	top, bottom := m.ObservedEdges()
	if top != nil || bottom != nil {
		t.Error("teardown must clear observed edges")
	}
}
