package sched

import "sync"

// Manual is a step-controlled scheduler for tests. Enqueued tasks run only
// when the test calls Step or RunAll, on the calling goroutine.
type Manual struct {
	mu    sync.Mutex
	tasks []func()
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// Enqueue appends task without running it.
func (m *Manual) Enqueue(task func()) {
	if task == nil {
		return
	}
	m.mu.Lock()
	m.tasks = append(m.tasks, task)
	m.mu.Unlock()
}

// Step runs the oldest pending task. It reports whether a task ran.
func (m *Manual) Step() bool {
	m.mu.Lock()
	if len(m.tasks) == 0 {
		m.mu.Unlock()
		return false
	}
	task := m.tasks[0]
	m.tasks = m.tasks[1:]
	m.mu.Unlock()

	task()
	return true
}

// RunAll runs pending tasks until none remain, including tasks enqueued by
// the tasks themselves.
func (m *Manual) RunAll() {
	for m.Step() {
	}
}

// Len returns the number of pending tasks.
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
