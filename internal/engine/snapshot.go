package engine

import "blockwin/internal/window"

// Snapshot captures the comparable inputs of one render commit, for
// the re-render-skip gate.
type Snapshot struct {
	// ContentRev changes whenever the block sequence changes.
	ContentRev uint64

	// DecoratorRev changes whenever the host's decorator set changes.
	DecoratorRev uint64

	// SelectionRev changes whenever the selection reference changes.
	SelectionRev uint64

	// Composition is the host's IME composition-mode flag.
	Composition bool

	// ForcedSelection is the host's force-selection flag.
	ForcedSelection bool

	// Focus is the current window focus.
	Focus window.Focus

	// FocusTargetKey is the pending programmatic scroll target.
	FocusTargetKey string
}

// ShouldRecompute reports whether a re-render is required: any tracked
// field differs between commits, or the internal window state changed.
// Otherwise the host should skip the render for performance.
func ShouldRecompute(prev, next Snapshot, windowChanged bool) bool {
	return windowChanged || prev != next
}
