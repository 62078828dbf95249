package trace

// Event flags.
const (
	// FlagEndFrame marks an event that closes the current frame.
	FlagEndFrame uint32 = 1 << 0
)

// Event is one recorded occurrence of a captured session. Sequence numbers
// are unique but, due to thread interleaving at capture time, not
// guaranteed to arrive in increasing order.
type Event struct {
	No      uint64
	Thread  int64
	Flags   uint32
	Payload []byte
}

// EndsFrame reports whether the event closes the current frame.
func (e *Event) EndsFrame() bool {
	return e.Flags&FlagEndFrame != 0
}
