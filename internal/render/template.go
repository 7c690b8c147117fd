// Package render turns the selected window of blocks into a rendered
// node specification: per-block templates, list numbering classes and
// shared wrapper grouping. It produces structure only; painting belongs
// to the host.
package render

import "blockwin/internal/block"

// Template describes how one block type renders: the element tag and an
// optional shared wrapper tag under which contiguous runs are grouped.
type Template struct {
	Tag     string
	Wrapper string
}

// TemplateMap maps block types to their render templates.
type TemplateMap map[block.Type]Template

// DefaultTemplates returns the built-in type templates.
func DefaultTemplates() TemplateMap {
	return TemplateMap{
		block.TypeUnstyled:          {Tag: "div"},
		block.TypeOrderedListItem:   {Tag: "li", Wrapper: "ol"},
		block.TypeUnorderedListItem: {Tag: "li", Wrapper: "ul"},
		block.TypeHeader:            {Tag: "h2"},
		block.TypeCodeBlock:         {Tag: "pre"},
		block.TypeBlockquote:        {Tag: "blockquote"},
		block.TypeAtomic:            {Tag: "figure"},
	}
}

// Resolve returns the template for a block type, falling back to the
// unstyled template, then to a bare div.
func (m TemplateMap) Resolve(t block.Type) Template {
	if tpl, ok := m[t]; ok {
		return tpl
	}
	if tpl, ok := m[block.TypeUnstyled]; ok {
		return tpl
	}
	return Template{Tag: "div"}
}

// Clone returns a copy of the map, for overlaying custom templates.
func (m TemplateMap) Clone() TemplateMap {
	out := make(TemplateMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
