package nodetree

// Project maps a candidate node to the nearest content node that
// actually represents a block, descending into nested list containers
// toward the first leaf (forward) or last leaf (backward). It returns
// nil when the subtree holds no content node.
type Project func(n *Node, forward bool) *Node

// DefaultProject descends through wrapper nodes to the edge-most block
// node in traversal direction.
func DefaultProject(n *Node, forward bool) *Node {
	for n != nil && n.IsWrapper() {
		if forward {
			n = n.FirstChild()
		} else {
			n = n.LastChild()
		}
	}
	return n
}

// Advance walks count rendering-visible siblings from n, forward or
// backward. Wrapper boundaries are transparent to the count: when a
// node has no further same-level sibling but sits inside a list
// wrapper, traversal steps out to the wrapper's sibling (or the
// wrapper's parent list's sibling) and continues.
//
// Advance returns nil when n is nil, when project is nil, or when
// traversal runs off either end of the tree before consuming count
// steps. A nil node is a normal terminal condition, never a panic.
func Advance(n *Node, count int, project Project, forward bool) *Node {
	if n == nil || project == nil || count < 0 {
		return nil
	}

	cur := project(n, forward)
	if cur == nil {
		return nil
	}

	for step := 0; step < count; step++ {
		next := cur.Sibling(forward)
		if next == nil {
			// Step out through enclosing wrappers until a sibling
			// exists at some wrapper level.
			for p := cur.Parent(); p != nil && p.IsWrapper(); p = p.Parent() {
				if s := p.Sibling(forward); s != nil {
					next = s
					break
				}
			}
		}
		if next == nil {
			return nil
		}
		cur = project(next, forward)
		if cur == nil {
			return nil
		}
	}

	return cur
}
