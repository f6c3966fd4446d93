package stream

import "fmt"

// EventKind discriminates the variants of an Event.
type EventKind uint8

const (
	// KindValue carries a payload; any number may be delivered.
	KindValue EventKind = iota + 1

	// KindFailed carries an error and terminates the stream.
	KindFailed

	// KindCompleted terminates the stream successfully.
	KindCompleted

	// KindInterrupted terminates the stream because its producer was
	// cancelled rather than finished.
	KindInterrupted
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindFailed:
		return "failed"
	case KindCompleted:
		return "completed"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Event is a single occurrence on a stream: a payload, or one of three
// terminal markers. At most one terminal event is ever delivered per stream,
// and nothing follows it.
type Event[T any] struct {
	kind  EventKind
	value T
	err   error
}

// Value returns a payload event.
func Value[T any](v T) Event[T] {
	return Event[T]{kind: KindValue, value: v}
}

// Failed returns a terminal failure event carrying err.
func Failed[T any](err error) Event[T] {
	return Event[T]{kind: KindFailed, err: err}
}

// Completed returns the terminal success event.
func Completed[T any]() Event[T] {
	return Event[T]{kind: KindCompleted}
}

// Interrupted returns the terminal cancellation event.
func Interrupted[T any]() Event[T] {
	return Event[T]{kind: KindInterrupted}
}

// Kind returns the event's variant.
func (e Event[T]) Kind() EventKind { return e.kind }

// Value returns the payload and true for value events, and the zero value
// and false otherwise.
func (e Event[T]) Value() (T, bool) {
	if e.kind == KindValue {
		return e.value, true
	}
	var zero T
	return zero, false
}

// Err returns the error of a failed event, or nil.
func (e Event[T]) Err() error { return e.err }

// IsTerminal reports whether the event ends delivery permanently.
func (e Event[T]) IsTerminal() bool {
	switch e.kind {
	case KindFailed, KindCompleted, KindInterrupted:
		return true
	default:
		return false
	}
}

// String returns the event in a compact form for logs and test output.
func (e Event[T]) String() string {
	switch e.kind {
	case KindValue:
		return fmt.Sprintf("value(%v)", e.value)
	case KindFailed:
		return fmt.Sprintf("failed(%v)", e.err)
	default:
		return e.kind.String()
	}
}
