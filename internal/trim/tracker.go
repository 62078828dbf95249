package trim

// Tracker reconstructs a contiguous completion frontier from finish signals
// arriving in arbitrary order. The frontier only advances; out-of-order
// signals park until the gap below them fills.
type Tracker struct {
	nextExpected uint64
	outOfOrder   map[uint64]struct{}
}

// NewTracker returns a Tracker with the frontier at zero.
func NewTracker() *Tracker {
	return &Tracker{outOfOrder: make(map[uint64]struct{})}
}

// Finish records that number n has been fully processed and returns the
// updated frontier: every number strictly below the returned value is known
// finished, with no gaps. Duplicate signals and signals below the frontier
// are no-ops.
func (t *Tracker) Finish(n uint64) uint64 {
	switch {
	case n == t.nextExpected:
		t.nextExpected++
		// Catch up through previously parked numbers.
		for {
			if _, ok := t.outOfOrder[t.nextExpected]; !ok {
				break
			}
			delete(t.outOfOrder, t.nextExpected)
			t.nextExpected++
		}
	case n > t.nextExpected:
		t.outOfOrder[n] = struct{}{}
	}
	return t.nextExpected
}

// NextExpected returns the current frontier without changing it.
func (t *Tracker) NextExpected() uint64 { return t.nextExpected }
