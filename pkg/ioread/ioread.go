// Package ioread drains readable resources as event streams.
//
// ReadToEnd turns any Resource into a stream of byte chunks: each scheduler
// step reads one bounded chunk and emits it, ending with a Completed event
// at end-of-resource or a Failed event on the first read error. Disposal of
// the last observer stops the step loop cooperatively.
package ioread

import (
	"fmt"
	"sync/atomic"

	"github.com/rivulet-dev/rivulet/pkg/disposable"
	"github.com/rivulet-dev/rivulet/pkg/sched"
	"github.com/rivulet-dev/rivulet/pkg/stream"
)

// defaultChunkSize bounds a single read step.
const defaultChunkSize = 4096

// Resource is a readable byte source.
type Resource interface {
	// ReadChunk reads at most maxBytes. An empty result with a nil error
	// means end of resource.
	ReadChunk(maxBytes int) ([]byte, error)
}

// ReadError wraps a resource read failure.
type ReadError struct {
	// Resource names the failed resource, when known.
	Resource string

	// Err is the underlying I/O error.
	Err error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("read %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("read: %v", e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Config configures a read stream.
type Config struct {
	// ChunkSize bounds each read step (default: 4096).
	ChunkSize int

	// Name labels the resource in errors. Resources implementing
	// fmt.Stringer are labeled automatically.
	Name string
}

// Option configures a read stream.
type Option func(*Config)

// WithChunkSize bounds the bytes read per step.
func WithChunkSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.ChunkSize = n
		}
	}
}

// WithResourceName labels the resource in read errors.
func WithResourceName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// ReadToEnd asynchronously drains r to completion on s.
//
// The returned stream emits one Value per nonzero chunk as it arrives, then
// Completed at end of resource, or Failed wrapping the first read error.
// Errors are never retried. Each step runs as its own scheduler task; the
// loop checks a liveness flag before scheduling the next step, so disposing
// the last observer stops further reads. A step already in flight when that
// happens finishes, and its emit lands in an empty registry.
func ReadToEnd(r Resource, s sched.Scheduler, opts ...Option) *stream.Signal[[]byte] {
	config := Config{ChunkSize: defaultChunkSize}
	if str, ok := r.(fmt.Stringer); ok {
		config.Name = str.String()
	}
	for _, opt := range opts {
		opt(&config)
	}

	return stream.New(func(em stream.Emitter[[]byte]) disposable.Disposable {
		var alive atomic.Bool
		alive.Store(true)

		var step func()
		step = func() {
			if !alive.Load() {
				return
			}

			chunk, err := r.ReadChunk(config.ChunkSize)
			switch {
			case err != nil:
				em.SendFailed(&ReadError{Resource: config.Name, Err: err})
			case len(chunk) == 0:
				em.SendCompleted()
			default:
				em.SendValue(chunk)
				if alive.Load() {
					s.Enqueue(step)
				}
			}
		}
		s.Enqueue(step)

		return disposable.New(func() {
			alive.Store(false)
		})
	})
}
