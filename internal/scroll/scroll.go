// Package scroll keeps the viewport visually stable across window
// recomputes: a continuity corrector that neutralizes layout shift when
// blocks are inserted or removed above the viewport, and a clamp that
// stops the user from scrolling into unrendered space.
package scroll

// Scroller is the host's scroll container offset, in layout units.
type Scroller interface {
	Offset() float64
	SetOffset(offset float64)
}

// Ticker defers a function by one host scheduling tick. Used to retry a
// correction once when layout has not settled yet.
type Ticker interface {
	Defer(fn func())
}

// TickFunc adapts a function to the Ticker interface.
type TickFunc func(fn func())

// Defer calls the underlying function.
func (t TickFunc) Defer(fn func()) {
	t(fn)
}
