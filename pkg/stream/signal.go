package stream

import "github.com/rivulet-dev/rivulet/pkg/disposable"

// Signal is the façade an application holds to observe a stream.
//
// A Signal confers no ownership: the stream's core is kept alive by its live
// registrations, never by the Signal itself. Dropping every Signal reference
// while observers are attached changes nothing, and holding a Signal with no
// observers does not keep the upstream producer running. That split is what
// lets "unsubscribe on last observer" release the upstream resource exactly
// once, regardless of how many copies of the façade still float around.
type Signal[T any] struct {
	core *core[T]
}

// Emitter pushes events into a stream's core. It is handed to producers by
// New and NewWithEmitter and is safe for concurrent use. Sends after a
// terminal event are dropped silently.
type Emitter[T any] struct {
	core *core[T]
}

// New builds a stream and starts produce with its Emitter.
//
// produce runs synchronously and may return a disposable cancelling the
// upstream work it started; that disposable becomes the stream's teardown,
// invoked exactly once when the last observer detaches or a terminal event
// is delivered, whichever happens first. A nil return means no teardown.
func New[T any](produce func(Emitter[T]) disposable.Disposable) *Signal[T] {
	s, em := NewWithEmitter[T]()
	if produce != nil {
		if d := produce(em); d != nil {
			s.core.addTeardown(d)
		}
	}
	return s
}

// NewWithEmitter builds a stream and returns the façade together with the
// Emitter feeding it. Useful when the producing side and the observing side
// live in different components.
func NewWithEmitter[T any]() (*Signal[T], Emitter[T]) {
	c := newCore[T]()
	return &Signal[T]{core: c}, Emitter[T]{core: c}
}

// Observe attaches fn to the stream. fn sees every subsequent event in send
// order, including the terminal one. If the stream has already terminated,
// fn is called synchronously once with the recorded terminal event and the
// returned registration is already disposed.
func (s *Signal[T]) Observe(fn func(Event[T])) *Registration {
	return s.core.observe(fn)
}

// ObserveValues is Observe filtered to payload events.
func (s *Signal[T]) ObserveValues(fn func(T)) *Registration {
	return s.core.observe(func(ev Event[T]) {
		if v, ok := ev.Value(); ok {
			fn(v)
		}
	})
}

// OnDisposed registers fn to run exactly once when the stream's teardown
// fires. If teardown has already fired, fn runs synchronously now.
func (s *Signal[T]) OnDisposed(fn func()) {
	if fn == nil {
		return
	}
	s.core.onDisposed(fn)
}

// Send delivers ev to all current observers.
func (e Emitter[T]) Send(ev Event[T]) {
	e.core.send(ev)
}

// SendValue delivers a payload event.
func (e Emitter[T]) SendValue(v T) {
	e.core.send(Value(v))
}

// SendFailed delivers the terminal failure event.
func (e Emitter[T]) SendFailed(err error) {
	e.core.send(Failed[T](err))
}

// SendCompleted delivers the terminal success event.
func (e Emitter[T]) SendCompleted() {
	e.core.send(Completed[T]())
}

// SendInterrupted delivers the terminal cancellation event.
func (e Emitter[T]) SendInterrupted() {
	e.core.send(Interrupted[T]())
}
