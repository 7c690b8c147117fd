package nodetree

// Node is one element of the rendered tree: a block node, a shared list
// wrapper, or the container itself. Nodes are built by the host from
// the renderer's output and re-located by key through a Locator.
type Node struct {
	key     string
	offset  int
	wrapper bool
	hidden  bool
	bounds  Rect

	parent   *Node
	children []*Node
}

// NewContainer creates a parentless container node.
func NewContainer() *Node {
	return &Node{offset: -1}
}

// NewBlockNode creates a node for a block with the given key and stable
// block-offset identifier.
func NewBlockNode(key string, offset int) *Node {
	return &Node{key: key, offset: offset}
}

// NewWrapperNode creates a shared wrapper node (list container).
func NewWrapperNode() *Node {
	return &Node{offset: -1, wrapper: true}
}

// Key returns the block key, or "" for wrappers and containers.
func (n *Node) Key() string {
	return n.key
}

// Offset returns the stable block-offset identifier, or -1 when the
// node does not represent a block.
func (n *Node) Offset() int {
	return n.offset
}

// IsWrapper reports whether the node is a shared list wrapper.
func (n *Node) IsWrapper() bool {
	return n.wrapper
}

// Hidden reports whether the node is display-suppressed.
func (n *Node) Hidden() bool {
	return n.hidden
}

// SetHidden marks the node display-suppressed.
func (n *Node) SetHidden(hidden bool) {
	n.hidden = hidden
}

// Bounds returns the node's bounding rectangle as last set by the host
// layout. An unlaid node returns the zero Rect.
func (n *Node) Bounds() Rect {
	return n.bounds
}

// SetBounds records the node's bounding rectangle.
func (n *Node) SetBounds(r Rect) {
	n.bounds = r
}

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the node's children in order.
func (n *Node) Children() []*Node {
	return n.children
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// AppendChild attaches a child to the node.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// index returns the node's position among its siblings, or -1.
func (n *Node) index() int {
	if n.parent == nil {
		return -1
	}
	for i, sib := range n.parent.children {
		if sib == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the following same-level sibling, or nil.
func (n *Node) NextSibling() *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	i := n.index()
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// PrevSibling returns the preceding same-level sibling, or nil.
func (n *Node) PrevSibling() *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	i := n.index()
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// Sibling returns the next sibling when forward is true, otherwise the
// previous one.
func (n *Node) Sibling(forward bool) *Node {
	if forward {
		return n.NextSibling()
	}
	return n.PrevSibling()
}
