package scheduler

import "sync"

// Queue is a FIFO task queue.
type Queue struct {
	mu      sync.Mutex
	tasks   []func()
	ready   chan struct{}
	running bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		ready: make(chan struct{}, 1),
	}
}

// Enqueue appends task. It never runs the task itself.
func (q *Queue) Enqueue(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Ready delivers a value whenever tasks were enqueued since the last read.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Pending returns the number of queued tasks.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Flush runs queued tasks until the queue is empty and returns how many
// ran. Tasks enqueued while flushing run in the same call. A nested Flush
// from inside a task returns 0 immediately; the outer call picks the
// remaining work up.
//
// A panicking task propagates to the caller; tasks still queued remain
// queued.
func (q *Queue) Flush() int {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return 0
	}
	q.running = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.running = false
		q.mu.Unlock()
	}()

	ran := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return ran
		}
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
		ran++
	}
}
