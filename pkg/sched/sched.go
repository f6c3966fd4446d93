// Package sched provides the execution capability consumed by stream
// producers: something that runs a task later.
//
// The contract is deliberately small. A Scheduler need not be FIFO across
// callers, but the causal order of one caller's successive enqueues is
// preserved by every implementation here. Nothing in this package blocks the
// calling goroutine.
package sched

// Scheduler runs tasks on some execution context.
type Scheduler interface {
	// Enqueue schedules task to run later. Successive enqueues from one
	// caller run in the order they were made.
	Enqueue(task func())
}

// Immediate runs tasks inline on the calling goroutine.
// Useful for tests and for pipelines that are synchronous anyway.
type Immediate struct{}

// Enqueue runs task before returning.
func (Immediate) Enqueue(task func()) {
	if task != nil {
		task()
	}
}
