// Package logqueue carries log records from request handling to persistence
// without ever blocking or failing the caller's response.
package logqueue

import "sync"

// Queue is a bounded, many-producer conveyor of log records. Enqueue never
// blocks: a full or closed queue drops the record (at-most-once delivery,
// no backpressure on callers).
type Queue[T any] struct {
	ch     chan T
	mu     sync.RWMutex
	closed bool
}

const defaultCapacity = 1024

// New creates a queue with the given capacity (defaultCapacity if <= 0).
func New[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Queue[T]{
		ch: make(chan T, capacity),
	}
}

// Enqueue offers a record and returns immediately. The return value reports
// whether the record was accepted; callers log and discard on false.
func (q *Queue[T]) Enqueue(record T) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.ch <- record:
		return true
	default:
		return false
	}
}

// Close stops accepting records. Records already queued remain readable.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}

// Len returns the number of queued records.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}
