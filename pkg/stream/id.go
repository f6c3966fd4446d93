package stream

import "sync/atomic"

// globalIDCounter is the source of registration ids for all streams.
// Atomic increments keep id generation lock-free.
var globalIDCounter uint64

// nextID returns the next registration id.
// Ids are monotonically increasing and never reused, so insertion order of
// the registry follows id order.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
