package stream

import "sync/atomic"

// detacher is the non-generic view of a core a Registration needs.
type detacher interface {
	detach(id uint64)
}

// Registration represents one observer's attachment to a stream.
// It owns one strong unit of the stream's liveness; disposing it removes the
// observer and releases that unit. Dispose is idempotent and safe to call
// concurrently.
type Registration struct {
	core     detacher
	id       uint64
	disposed atomic.Bool
}

func newRegistration(core detacher, id uint64) *Registration {
	return &Registration{core: core, id: id}
}

// inertRegistration returns an already-disposed Registration, handed out when
// attaching to a stream that has already terminated.
func inertRegistration() *Registration {
	r := &Registration{}
	r.disposed.Store(true)
	return r
}

// Dispose detaches the observer. Disposing twice has the effect of once.
func (r *Registration) Dispose() {
	if r.disposed.Swap(true) {
		return
	}
	if r.core != nil {
		r.core.detach(r.id)
	}
}

// IsDisposed reports whether Dispose has been called.
func (r *Registration) IsDisposed() bool {
	return r.disposed.Load()
}
