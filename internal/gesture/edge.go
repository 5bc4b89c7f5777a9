package gesture

// EdgeTrigger converts a level signal into edge events: Update returns true
// exactly once per false→true transition. A held true does not re-fire and
// a transition back to false only resets the latch.
type EdgeTrigger struct {
	prev bool
}

// Update feeds the current state and reports whether a rising edge occurred.
func (e *EdgeTrigger) Update(current bool) bool {
	fired := current && !e.prev
	e.prev = current
	return fired
}

// Reset clears the latch so the next true fires again.
func (e *EdgeTrigger) Reset() {
	e.prev = false
}
