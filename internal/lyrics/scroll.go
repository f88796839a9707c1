package lyrics

// CenterOffset computes the scroll offset that centers the line at active
// within a viewport of viewHeight rows. heights holds the rendered height of
// each line (overlay mode renders two rows per line). Returns -1 when the
// active index is unresolved or out of range.
func CenterOffset(heights []int, active, viewHeight int) int {
	if active < 0 || active >= len(heights) || viewHeight <= 0 {
		return -1
	}

	top := 0
	total := 0
	for i, h := range heights {
		if i < active {
			top += h
		}
		total += h
	}

	center := top + heights[active]/2
	offset := center - viewHeight/2

	if max := total - viewHeight; offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// Coordinator tracks the resolved active-line index and reports the offset to
// scroll to whenever it changes, including on its first resolution.
type Coordinator struct {
	last    int
	started bool
}

// NewCoordinator returns a Coordinator that has not yet resolved a line.
func NewCoordinator() *Coordinator {
	return &Coordinator{last: -1}
}

// Update returns the centering offset and true when the active index changed
// and an offset could be computed; otherwise (-1, false). An unresolved index
// is always a no-op.
func (c *Coordinator) Update(heights []int, active, viewHeight int) (int, bool) {
	if active < 0 {
		return -1, false
	}
	if c.started && active == c.last {
		return -1, false
	}

	offset := CenterOffset(heights, active, viewHeight)
	if offset < 0 {
		// Element not mounted yet; retry on a later tick.
		return -1, false
	}

	c.last = active
	c.started = true
	return offset, true
}

// Reset clears the coordinator when the document is replaced, so the first
// resolution against the new document scrolls again.
func (c *Coordinator) Reset() {
	c.last = -1
	c.started = false
}
