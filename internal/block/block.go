// Package block defines the document block model consumed by the
// windowing engine. Blocks are owned by the host editor and treated as
// immutable; the engine only annotates derived wrappers.
package block

// Type identifies the structural kind of a block.
type Type uint8

// Block types.
const (
	// TypeUnstyled is a plain paragraph.
	TypeUnstyled Type = iota

	// TypeOrderedListItem is a numbered list item. At depth 0 it acts as
	// a collapsible section header.
	TypeOrderedListItem

	// TypeUnorderedListItem is a bulleted list item.
	TypeUnorderedListItem

	// TypeHeader is a heading block.
	TypeHeader

	// TypeCodeBlock is a preformatted code block.
	TypeCodeBlock

	// TypeBlockquote is a quoted block.
	TypeBlockquote

	// TypeAtomic is an embedded object (image, divider, etc.).
	TypeAtomic
)

// String returns the canonical name of the block type.
func (t Type) String() string {
	switch t {
	case TypeUnstyled:
		return "unstyled"
	case TypeOrderedListItem:
		return "ordered-list-item"
	case TypeUnorderedListItem:
		return "unordered-list-item"
	case TypeHeader:
		return "header"
	case TypeCodeBlock:
		return "code-block"
	case TypeBlockquote:
		return "blockquote"
	case TypeAtomic:
		return "atomic"
	default:
		return "unknown"
	}
}

// ParseType parses a canonical type name. Unknown names return
// TypeUnstyled and ok=false.
func ParseType(s string) (Type, bool) {
	switch s {
	case "unstyled", "":
		return TypeUnstyled, s != ""
	case "ordered-list-item":
		return TypeOrderedListItem, true
	case "unordered-list-item":
		return TypeUnorderedListItem, true
	case "header":
		return TypeHeader, true
	case "code-block":
		return TypeCodeBlock, true
	case "blockquote":
		return TypeBlockquote, true
	case "atomic":
		return TypeAtomic, true
	default:
		return TypeUnstyled, false
	}
}

// Data holds per-block auxiliary values (section open state, text, etc.).
type Data map[string]any

// Bool reads a boolean value, returning def when the key is absent or
// not a boolean.
func (d Data) Bool(key string, def bool) bool {
	v, ok := d[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// String reads a string value, returning "" when absent or not a string.
func (d Data) String(key string) string {
	v, ok := d[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Block is one structural unit of document content. The Key is unique
// within a document and stable across edits of that document.
type Block struct {
	Key   string
	Type  Type
	Depth int
	Data  Data
}

// IsSection reports whether the block is a collapsible section header:
// a depth-0 ordered list item.
func (b Block) IsSection() bool {
	return b.Type == TypeOrderedListItem && b.Depth == 0
}

// IsOpen reports the section open state. Blocks without an isOpen data
// entry (or with a non-boolean one) default to open.
func (b Block) IsOpen() bool {
	return b.Data.Bool("isOpen", true)
}

// IndexOf returns the position of the block with the given key, or -1.
func IndexOf(blocks []Block, key string) int {
	if key == "" {
		return -1
	}
	for i := range blocks {
		if blocks[i].Key == key {
			return i
		}
	}
	return -1
}
