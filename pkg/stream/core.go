package stream

import (
	"sync"
	"sync/atomic"

	"github.com/rivulet-dev/rivulet/pkg/disposable"
)

// observerEntry is one registry slot: a callback keyed by registration id.
// alive is cleared on explicit detach so an observer disposed mid-fan-out is
// skipped for the in-flight event; terminal delivery leaves it set, since
// observers cleared by a terminal event must still receive that event.
type observerEntry[T any] struct {
	id    uint64
	fn    func(Event[T])
	alive *atomic.Bool
}

// core is the shared state behind a stream: the ordered observer registry,
// the recorded terminal event, the upstream teardown, and the strong count.
//
// One mutex guards everything. Fan-out snapshots the registry and invokes
// callbacks outside the lock so observer code may re-enter observe/dispose
// on the same core without deadlocking; an observer added during fan-out does
// not see the in-flight event, and one removed during fan-out still does not.
type core[T any] struct {
	mu sync.Mutex

	// observers in insertion order; delivery order follows it.
	observers []observerEntry[T]

	// terminal is the recorded terminal event, nil while the stream is live.
	terminal *Event[T]

	// teardown cancels the upstream producer and runs any disposal hooks.
	teardown *disposable.Composite

	// tornDown is the won-the-race marker for the at-most-once teardown.
	// Checked and set only under mu.
	tornDown bool

	// refs counts strong units: one per live registration.
	refs int
}

func newCore[T any]() *core[T] {
	return &core[T]{teardown: disposable.NewComposite()}
}

// addTeardown appends d to the upstream teardown. If teardown already ran,
// d is disposed immediately.
func (c *core[T]) addTeardown(d disposable.Disposable) {
	// Composite.Add handles the already-disposed case itself.
	c.teardown.Add(d)
}

// onDisposed registers fn to run exactly once when teardown fires.
// If teardown has already fired, fn runs synchronously now.
func (c *core[T]) onDisposed(fn func()) {
	c.teardown.AddFunc(fn)
}

// takeTeardownLocked claims the right to run teardown. It returns the action
// to invoke (outside the lock) on the first call and nil on every later one.
func (c *core[T]) takeTeardownLocked() func() {
	if c.tornDown {
		return nil
	}
	c.tornDown = true
	return c.teardown.Dispose
}

// observe attaches fn at the registry tail and takes one strong unit.
//
// If the core is already terminal, fn is invoked synchronously with the
// recorded terminal event and the returned registration is inert.
func (c *core[T]) observe(fn func(Event[T])) *Registration {
	c.mu.Lock()
	if c.terminal != nil {
		ev := *c.terminal
		c.mu.Unlock()
		fn(ev)
		return inertRegistration()
	}

	id := nextID()
	alive := &atomic.Bool{}
	alive.Store(true)
	c.observers = append(c.observers, observerEntry[T]{id: id, fn: fn, alive: alive})
	c.refs++
	c.mu.Unlock()

	return newRegistration(c, id)
}

// detach removes the registration's registry entry if still present and
// releases its strong unit. When the registry empties while the core is
// non-terminal, the upstream teardown fires; the stream is not marked
// terminal, so a later observer may still attach (and will see no events,
// the upstream being gone).
func (c *core[T]) detach(id uint64) {
	c.mu.Lock()
	removed := false
	for i, entry := range c.observers {
		if entry.id == id {
			entry.alive.Store(false)
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			removed = true
			break
		}
	}

	var teardown func()
	if removed {
		c.refs--
		if c.refs == 0 && c.terminal == nil {
			teardown = c.takeTeardownLocked()
		}
	}
	c.mu.Unlock()

	if teardown != nil {
		teardown()
	}
}

// send fans ev out to a snapshot of the registry, in insertion order.
//
// Events sent after a terminal event are dropped silently. A terminal event
// is recorded, clears the registry (releasing every affected strong unit),
// and fires teardown exactly once after fan-out completes.
func (c *core[T]) send(ev Event[T]) {
	c.mu.Lock()
	if c.terminal != nil {
		c.mu.Unlock()
		return
	}

	snapshot := make([]observerEntry[T], len(c.observers))
	copy(snapshot, c.observers)

	var teardown func()
	if ev.IsTerminal() {
		c.terminal = &ev
		c.observers = nil
		c.refs = 0
		teardown = c.takeTeardownLocked()
	}
	c.mu.Unlock()

	for _, entry := range snapshot {
		if entry.alive.Load() {
			entry.fn(ev)
		}
	}

	if teardown != nil {
		teardown()
	}
}
