package render

import (
	"fmt"

	"blockwin/internal/block"
	"blockwin/internal/nodetree"
)

// NodeSpec is one node of the rendered output: a block node or a shared
// wrapper holding a contiguous run of blocks.
type NodeSpec struct {
	// Key is the block key; "" for wrappers.
	Key string

	// Offset is the stable block-offset identifier (original index);
	// -1 for wrappers.
	Offset int

	// Tag is the element tag to render.
	Tag string

	// Depth is the block's nesting depth.
	Depth int

	// Class is the space-separated class list (type, depth, counter
	// reset, hidden suppression).
	Class string

	// Ordinal is the list numbering for ordered items, 0 otherwise.
	Ordinal int

	// Hidden marks a display-suppressed block (the force-included tail
	// of a collapsed section).
	Hidden bool

	// Wrapper marks a shared wrapper node.
	Wrapper bool

	// Children holds the grouped blocks of a wrapper node.
	Children []*NodeSpec
}

// StyleFunc supplies extra classes for a block. Pass-through for host
// customization; not part of the windowing contract.
type StyleFunc func(f block.Filtered) string

// Renderer assembles NodeSpecs for the windowed blocks.
type Renderer struct {
	templates TemplateMap
	style     StyleFunc
}

// NewRenderer creates a renderer with the given template map. A nil map
// uses the defaults.
func NewRenderer(templates TemplateMap) *Renderer {
	if templates == nil {
		templates = DefaultTemplates()
	}
	return &Renderer{templates: templates}
}

// SetStyleFunc installs a custom class hook.
func (r *Renderer) SetStyleFunc(fn StyleFunc) {
	r.style = fn
}

// Templates returns the active template map.
func (r *Renderer) Templates() TemplateMap {
	return r.templates
}

// Render produces the node sequence for the windowed blocks, grouping
// contiguous same-wrapper runs into shared wrapper nodes.
func (r *Renderer) Render(blocks []block.Filtered) []*NodeSpec {
	if len(blocks) == 0 {
		return nil
	}

	out := make([]*NodeSpec, 0, len(blocks))
	ctr := newCounter()

	var run *NodeSpec // open wrapper, nil between runs
	for _, f := range blocks {
		tpl := r.templates.Resolve(f.Type)
		spec := r.blockSpec(f, tpl, ctr)

		if tpl.Wrapper == "" {
			ctr.breakRun()
			run = nil
			out = append(out, spec)
			continue
		}

		if run == nil || run.Tag != tpl.Wrapper {
			run = &NodeSpec{
				Offset:  -1,
				Tag:     tpl.Wrapper,
				Wrapper: true,
			}
			out = append(out, run)
		}
		run.Children = append(run.Children, spec)
	}

	return out
}

// blockSpec builds the spec for a single block.
func (r *Renderer) blockSpec(f block.Filtered, tpl Template, ctr *counter) *NodeSpec {
	spec := &NodeSpec{
		Key:    f.Key,
		Offset: f.OriginalIndex,
		Tag:    tpl.Tag,
		Depth:  f.Depth,
		Hidden: f.Hidden,
	}

	class := fmt.Sprintf("%s depth%d", f.Type, f.Depth)
	if tpl.Wrapper != "" {
		ordinal, reset := ctr.next(tpl.Wrapper, f.Depth)
		if f.Type == block.TypeOrderedListItem {
			spec.Ordinal = ordinal
		}
		if reset {
			class += " reset"
		}
	}
	if f.Hidden {
		class += " hidden"
	}
	if r.style != nil {
		if extra := r.style(f); extra != "" {
			class += " " + extra
		}
	}
	spec.Class = class

	return spec
}

// BuildTree materializes specs into a node tree with key lookup, the
// shape the observer manager and navigator traverse.
func BuildTree(specs []*NodeSpec) *nodetree.Tree {
	tree := nodetree.NewTree()
	for _, spec := range specs {
		appendSpec(tree, tree.Root(), spec)
	}
	return tree
}

func appendSpec(tree *nodetree.Tree, parent *nodetree.Node, spec *NodeSpec) {
	if spec.Wrapper {
		w := nodetree.NewWrapperNode()
		parent.AppendChild(w)
		for _, child := range spec.Children {
			appendSpec(tree, w, child)
		}
		return
	}

	n := nodetree.NewBlockNode(spec.Key, spec.Offset)
	n.SetHidden(spec.Hidden)
	parent.AppendChild(n)
	tree.Register(n)
}
