package scroll

// Clamp floors the scroll offset while the window is not anchored at
// the true first block. Without it the user could scroll up into a
// region with no rendered content above the window.
type Clamp struct {
	scroller Scroller

	threshold float64
	topOfPage bool
}

// NewClamp creates a clamp bound to the host scroll container. The
// clamp starts anchored at the top of the page (inactive).
func NewClamp(scroller Scroller) *Clamp {
	return &Clamp{scroller: scroller, topOfPage: true}
}

// SetTopOfPage records whether the window currently starts at the true
// first block. The clamp only engages while it does not.
func (c *Clamp) SetTopOfPage(topOfPage bool) {
	c.topOfPage = topOfPage
}

// SetThreshold records the measured height of the first window's
// blocks: the minimum offset the user may scroll to while detached
// from the top. Negative thresholds are treated as zero.
func (c *Clamp) SetThreshold(threshold float64) {
	if threshold < 0 {
		threshold = 0
	}
	c.threshold = threshold
}

// Threshold returns the current floor.
func (c *Clamp) Threshold() float64 {
	return c.threshold
}

// Apply enforces the floor. Returns true when the offset was clamped.
func (c *Clamp) Apply() bool {
	if c.topOfPage || c.scroller == nil {
		return false
	}
	if c.scroller.Offset() >= c.threshold {
		return false
	}
	c.scroller.SetOffset(c.threshold)
	return true
}
