package render

// listNumbering tracks ordered-list counters keyed by parent identifier.
// Each parent scope numbers independently: the counter appears when the
// first ordered item under a parent is entered and is released when the
// traversal finishes that parent's children, so a later sibling list under a
// different parent restarts at 1. Bullet items and non-list siblings never
// touch the counter.
type listNumbering struct {
	counters map[string]int
}

func newListNumbering() *listNumbering {
	return &listNumbering{counters: map[string]int{}}
}

// next increments the counter for parentID and returns the post-increment
// value, initialising the counter on first use.
func (n *listNumbering) next(parentID string) int {
	n.counters[parentID]++
	return n.counters[parentID]
}

// release drops the counter scope for a parent whose children are done.
func (n *listNumbering) release(parentID string) {
	delete(n.counters, parentID)
}
