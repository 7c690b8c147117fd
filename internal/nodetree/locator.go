package nodetree

// Locator resolves a block key to its rendered node. Production hosts
// back this with their real node lookup; tests use a Tree.
type Locator interface {
	// Find returns the node rendered for the given block key, or nil
	// when the block is not currently materialized.
	Find(key string) *Node
}

// Tree is an in-memory rendered tree with key lookup. It implements
// Locator.
type Tree struct {
	root  *Node
	byKey map[string]*Node
}

// NewTree creates an empty tree with a container root.
func NewTree() *Tree {
	return &Tree{
		root:  NewContainer(),
		byKey: make(map[string]*Node),
	}
}

// Root returns the container node.
func (t *Tree) Root() *Node {
	return t.root
}

// Find returns the node for the given key, or nil.
func (t *Tree) Find(key string) *Node {
	if key == "" {
		return nil
	}
	return t.byKey[key]
}

// Register records a node under its key for later lookup. Nodes without
// a key are ignored.
func (t *Tree) Register(n *Node) {
	if n == nil || n.Key() == "" {
		return
	}
	t.byKey[n.Key()] = n
}

// Len returns the number of registered block nodes.
func (t *Tree) Len() int {
	return len(t.byKey)
}
