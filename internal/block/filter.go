package block

// Filtered wraps a Block with the transient rendering metadata computed
// by a filter pass. Filtered values are rebuilt from scratch on every
// pass and never persisted.
type Filtered struct {
	Block

	// OriginalIndex is the block's position in the full, unfiltered
	// sequence.
	OriginalIndex int

	// IsSection is true for collapsible section headers.
	IsSection bool

	// Hidden marks the force-included last block when it would
	// otherwise have been filtered out. Hidden blocks are rendered
	// with display suppressed.
	Hidden bool
}

// Filter projects the full block sequence into the visible sequence,
// removing blocks nested inside collapsed sections. Section headers are
// always kept, open or closed. The true last block is force-appended
// (tagged Hidden) if it was filtered out, so the output always ends at
// the document's final key.
//
// Only one level of open/closed state is tracked: a section inside a
// collapsed section is skipped by the same flag, and reopening the
// outer section reveals the inner header but not its children.
func Filter(blocks []Block) []Filtered {
	if len(blocks) == 0 {
		return nil
	}

	out := make([]Filtered, 0, len(blocks))
	skipping := false

	for i, b := range blocks {
		if b.IsSection() {
			skipping = !b.IsOpen()
			out = append(out, Filtered{Block: b, OriginalIndex: i, IsSection: true})
			continue
		}
		if skipping {
			continue
		}
		out = append(out, Filtered{Block: b, OriginalIndex: i})
	}

	// The last block must always survive so the window selector can
	// anchor the document tail.
	last := len(blocks) - 1
	if len(out) == 0 || out[len(out)-1].OriginalIndex != last {
		b := blocks[last]
		out = append(out, Filtered{
			Block:         b,
			OriginalIndex: last,
			IsSection:     b.IsSection(),
			Hidden:        true,
		})
	}

	return out
}

// IndexOfFiltered returns the position of the given key within a
// filtered sequence, or -1 when the key is absent (for example a block
// inside a collapsed section).
func IndexOfFiltered(filtered []Filtered, key string) int {
	if key == "" {
		return -1
	}
	for i := range filtered {
		if filtered[i].Key == key {
			return i
		}
	}
	return -1
}
