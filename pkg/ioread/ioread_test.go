package ioread

import (
	"errors"
	"strings"
	"testing"

	"github.com/rivulet-dev/rivulet/pkg/sched"
	"github.com/rivulet-dev/rivulet/pkg/stream"
)

func TestReadToEndEmitsChunksThenCompleted(t *testing.T) {
	s := sched.NewManual()
	sig := ReadToEnd(NewReader("greeting", strings.NewReader("Hello, world!\n")), s)

	var got []stream.Event[[]byte]
	sig.Observe(func(ev stream.Event[[]byte]) { got = append(got, ev) })

	s.RunAll()

	if len(got) != 2 {
		t.Fatalf("expected value + completed, got %v", got)
	}
	chunk, ok := got[0].Value()
	if !ok || string(chunk) != "Hello, world!\n" {
		t.Errorf("first event = %v, want the file contents", got[0])
	}
	if got[1].Kind() != stream.KindCompleted {
		t.Errorf("last event = %v, want completed", got[1])
	}
}

func TestReadToEndChunking(t *testing.T) {
	s := sched.NewManual()
	sig := ReadToEnd(NewReader("abc", strings.NewReader("abcdef")), s, WithChunkSize(2))

	var chunks []string
	var completed bool
	sig.Observe(func(ev stream.Event[[]byte]) {
		if v, ok := ev.Value(); ok {
			chunks = append(chunks, string(v))
		}
		if ev.Kind() == stream.KindCompleted {
			completed = true
		}
	})

	s.RunAll()

	if len(chunks) != 3 || chunks[0] != "ab" || chunks[1] != "cd" || chunks[2] != "ef" {
		t.Errorf("chunks = %v", chunks)
	}
	if !completed {
		t.Error("stream never completed")
	}
}

// failingResource fails on the first read.
type failingResource struct {
	err error
}

func (r *failingResource) ReadChunk(int) ([]byte, error) {
	return nil, r.err
}

func TestReadToEndFailure(t *testing.T) {
	s := sched.NewManual()
	ioErr := errors.New("device gone")
	sig := ReadToEnd(&failingResource{err: ioErr}, s, WithResourceName("bad"))

	var got []stream.Event[[]byte]
	sig.Observe(func(ev stream.Event[[]byte]) { got = append(got, ev) })

	s.RunAll()

	if len(got) != 1 || got[0].Kind() != stream.KindFailed {
		t.Fatalf("expected a single failed event, got %v", got)
	}

	var readErr *ReadError
	if !errors.As(got[0].Err(), &readErr) {
		t.Fatalf("error %v is not a *ReadError", got[0].Err())
	}
	if !errors.Is(got[0].Err(), ioErr) {
		t.Error("wrapped error lost the underlying cause")
	}
	if readErr.Resource != "bad" {
		t.Errorf("resource label = %q, want %q", readErr.Resource, "bad")
	}
}

func TestReadToEndDisposalStopsLoop(t *testing.T) {
	s := sched.NewManual()
	reader := NewReader("long", strings.NewReader(strings.Repeat("x", 100)))
	sig := ReadToEnd(reader, s, WithChunkSize(10))

	events := 0
	reg := sig.Observe(func(stream.Event[[]byte]) { events++ })

	// One step: one chunk emitted, next step enqueued.
	if !s.Step() {
		t.Fatal("no initial step was scheduled")
	}
	if events != 1 {
		t.Fatalf("expected 1 event after one step, got %d", events)
	}

	reg.Dispose()
	s.RunAll()

	// The already-enqueued step checks liveness and stops; no further events
	// arrive and no task storm remains.
	if events != 1 {
		t.Errorf("events after disposal: %d, want 1", events)
	}
	if s.Len() != 0 {
		t.Errorf("%d tasks still pending after disposal", s.Len())
	}
}

func TestReadErrorFormatting(t *testing.T) {
	err := &ReadError{Resource: "s3://b/k", Err: errors.New("timeout")}
	if got := err.Error(); got != "read s3://b/k: timeout" {
		t.Errorf("Error() = %q", got)
	}
	bare := &ReadError{Err: errors.New("timeout")}
	if got := bare.Error(); got != "read: timeout" {
		t.Errorf("Error() = %q", got)
	}
}
