// Package disposable provides cancelable resource tokens.
//
// A Disposable represents a unit of work or a held resource that can be
// released exactly once. Disposal is always idempotent: disposing twice has
// the effect of disposing once, and disposing is never an error.
package disposable

import (
	"sync"
	"sync/atomic"
)

// Disposable is a token for a resource that can be released.
// Implementations must make Dispose idempotent and safe for concurrent use.
type Disposable interface {
	// Dispose releases the resource. Calling it more than once has the
	// effect of calling it once.
	Dispose()

	// IsDisposed reports whether Dispose has been called.
	IsDisposed() bool
}

// Anonymous wraps a single cleanup function.
type Anonymous struct {
	fn       func()
	disposed atomic.Bool
}

// New returns a Disposable that runs fn on first Dispose.
// A nil fn yields an inert but not-yet-disposed token.
func New(fn func()) *Anonymous {
	return &Anonymous{fn: fn}
}

// Empty returns an already-disposed token.
// Useful as the result of an attach that can never be live.
func Empty() *Anonymous {
	d := &Anonymous{}
	d.disposed.Store(true)
	return d
}

// Dispose runs the cleanup function if it has not run yet.
func (d *Anonymous) Dispose() {
	if d.disposed.Swap(true) {
		return
	}
	if d.fn != nil {
		d.fn()
	}
}

// IsDisposed reports whether Dispose has been called.
func (d *Anonymous) IsDisposed() bool {
	return d.disposed.Load()
}

// Composite is a collection of disposables released together.
// Adding to an already-disposed Composite disposes the child immediately.
type Composite struct {
	mu       sync.Mutex
	children []Disposable
	disposed bool
}

// NewComposite returns a Composite holding the given disposables.
func NewComposite(children ...Disposable) *Composite {
	c := &Composite{}
	for _, child := range children {
		c.Add(child)
	}
	return c
}

// Add registers a child for disposal. If the Composite is already disposed,
// the child is disposed right away.
func (c *Composite) Add(child Disposable) {
	if child == nil {
		return
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		child.Dispose()
		return
	}
	c.children = append(c.children, child)
	c.mu.Unlock()
}

// AddFunc registers a cleanup function as a child.
func (c *Composite) AddFunc(fn func()) {
	if fn == nil {
		return
	}
	c.Add(New(fn))
}

// Dispose disposes every child. Children are disposed outside the lock so a
// child's cleanup may safely call back into the Composite.
func (c *Composite) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	children := c.children
	c.children = nil
	c.mu.Unlock()

	for _, child := range children {
		child.Dispose()
	}
}

// IsDisposed reports whether Dispose has been called.
func (c *Composite) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Serial holds at most one inner disposable at a time.
// Swapping in a replacement disposes the previous inner value, and disposing
// the Serial disposes the current inner value plus anything swapped in later.
type Serial struct {
	mu       sync.Mutex
	inner    Disposable
	disposed bool
}

// NewSerial returns an empty Serial.
func NewSerial() *Serial {
	return &Serial{}
}

// Swap installs next as the inner disposable and disposes the previous one.
// If the Serial is already disposed, next is disposed immediately.
func (s *Serial) Swap(next Disposable) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		if next != nil {
			next.Dispose()
		}
		return
	}
	prev := s.inner
	s.inner = next
	s.mu.Unlock()

	if prev != nil {
		prev.Dispose()
	}
}

// Dispose disposes the current inner disposable.
func (s *Serial) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	inner := s.inner
	s.inner = nil
	s.mu.Unlock()

	if inner != nil {
		inner.Dispose()
	}
}

// IsDisposed reports whether Dispose has been called.
func (s *Serial) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
