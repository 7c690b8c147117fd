package engine

import "blockwin/internal/window"

// CommandKind identifies an effect command.
type CommandKind uint8

const (
	// CmdDetachWatchers tears down the boundary watchers before the
	// tree changes.
	CmdDetachWatchers CommandKind = iota

	// CmdRenderWindow re-renders the container children from the new
	// index set. The host snapshots boundary positions before the
	// commit and applies the scroll correction for Direction after it.
	CmdRenderWindow

	// CmdAttachWatchers re-attaches boundary watchers once the
	// container reflects the new index set.
	CmdAttachWatchers

	// CmdScrollToKey scrolls the container to bring a block into view.
	CmdScrollToKey
)

// String returns the string representation of the command kind.
func (k CommandKind) String() string {
	switch k {
	case CmdDetachWatchers:
		return "detach-watchers"
	case CmdRenderWindow:
		return "render-window"
	case CmdAttachWatchers:
		return "attach-watchers"
	case CmdScrollToKey:
		return "scroll-to-key"
	default:
		return "unknown"
	}
}

// Command is one imperative effect the host must perform. The engine's
// transitions stay pure; commands isolate the unavoidable tree and
// scroll operations.
type Command struct {
	Kind CommandKind

	// Key is the target block for CmdScrollToKey.
	Key string

	// Direction accompanies CmdRenderWindow so the host can run the
	// scroll continuity correction for the edge that moved.
	Direction window.Direction
}
