package sched

import (
	"sync"
	"time"

	"github.com/rivulet-dev/rivulet/pkg/interval"
)

// Queue runs tasks one at a time on a dedicated goroutine, in enqueue order.
// The queue is unbounded: Enqueue never blocks the caller.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool

	// done is closed when the worker goroutine exits.
	done chan struct{}
}

// NewQueue starts a serial task queue.
func NewQueue() *Queue {
	q := &Queue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// Enqueue appends task to the queue. Tasks enqueued after Close are dropped.
func (q *Queue) Enqueue(task func()) {
	if task == nil {
		return
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
	q.cond.Signal()
}

// EnqueueAfter schedules task to run once d has elapsed.
// A Never or out-of-range interval is never scheduled; a non-positive one
// runs as soon as the queue gets to it.
func (q *Queue) EnqueueAfter(d interval.Interval, task func()) {
	dur, ok := d.Duration()
	if !ok {
		return
	}
	if dur <= 0 {
		q.Enqueue(task)
		return
	}
	time.AfterFunc(dur, func() { q.Enqueue(task) })
}

// Close stops intake, lets already-enqueued tasks drain, and stops the
// worker. It returns after the worker has exited.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	q.mu.Unlock()
	q.cond.Signal()
	<-q.done
}

// run is the worker loop.
func (q *Queue) run() {
	defer close(q.done)

	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 {
			// Closed and drained.
			q.mu.Unlock()
			return
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
	}
}
