package render

// counter tracks ordered-list numbering across one render pass. The
// counter resets on wrapper change, on depth increase, and on depth
// decrease into a depth not seen since the last reset.
type counter struct {
	prevWrapper string
	prevDepth   int
	started     bool
	seenDepths  map[int]bool
	counts      map[int]int
}

func newCounter() *counter {
	return &counter{
		seenDepths: make(map[int]bool),
		counts:     make(map[int]int),
	}
}

// next advances the counter for a list item at the given depth under
// the given wrapper and returns its ordinal plus whether the counter
// reset at this item.
func (c *counter) next(wrapper string, depth int) (ordinal int, reset bool) {
	switch {
	case !c.started:
		reset = true
	case wrapper != c.prevWrapper:
		reset = true
	case depth > c.prevDepth:
		reset = true
	case depth < c.prevDepth && !c.seenDepths[depth]:
		reset = true
	}

	if reset {
		// A reset at this depth invalidates everything deeper.
		for d := range c.counts {
			if d >= depth {
				delete(c.counts, d)
			}
		}
		for d := range c.seenDepths {
			if d > depth {
				delete(c.seenDepths, d)
			}
		}
	}

	c.counts[depth]++
	c.seenDepths[depth] = true
	c.prevWrapper = wrapper
	c.prevDepth = depth
	c.started = true

	return c.counts[depth], reset
}

// breakRun notes a non-list block, which ends any wrapper run.
func (c *counter) breakRun() {
	c.prevWrapper = ""
	c.prevDepth = 0
	c.started = false
	c.seenDepths = make(map[int]bool)
	c.counts = make(map[int]int)
}
