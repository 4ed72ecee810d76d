package queue

import (
	"context"
	"sync"
	"time"

	"juicery/internal/faults"
)

// Queue is a thread-safe FIFO with an optional capacity bound.
type Queue[T any] struct {
	mu       sync.Mutex
	items    []T
	capacity int

	notEmpty chan struct{}
	notFull  chan struct{}
}

// New constructs a queue holding at most capacity items. A capacity of zero
// or less makes the queue unbounded.
func New[T any](capacity int) *Queue[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Queue[T]{
		capacity: capacity,
		notEmpty: make(chan struct{}),
		notFull:  make(chan struct{}),
	}
}

// Capacity returns the configured bound, or zero for an unbounded queue.
func (q *Queue[T]) Capacity() int {
	return q.capacity
}

// Put appends item, blocking until space is available. The item is never
// dropped unless ctx ends first, in which case the returned error wraps
// faults.ErrInterrupted and the item was not enqueued.
func (q *Queue[T]) Put(ctx context.Context, item T) error {
	for {
		q.mu.Lock()
		if q.capacity == 0 || len(q.items) < q.capacity {
			q.items = append(q.items, item)
			broadcast(&q.notEmpty)
			q.mu.Unlock()
			return nil
		}
		wait := q.notFull
		q.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return faults.Wrap(faults.ErrInterrupted, "queue", "put", "waiting for space", ctx.Err())
		}
	}
}

// Poll removes and returns the head of the queue, waiting up to timeout for
// one to arrive. ok is false when the timeout elapsed with nothing to take.
// A non-positive timeout checks once without waiting.
func (q *Queue[T]) Poll(ctx context.Context, timeout time.Duration) (item T, ok bool, err error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			item = q.items[0]
			var zero T
			q.items[0] = zero
			q.items = q.items[1:]
			broadcast(&q.notFull)
			q.mu.Unlock()
			return item, true, nil
		}
		wait := q.notEmpty
		q.mu.Unlock()

		if expired == nil {
			return item, false, nil
		}
		select {
		case <-wait:
		case <-expired:
			return item, false, nil
		case <-ctx.Done():
			return item, false, faults.Wrap(faults.ErrInterrupted, "queue", "poll", "waiting for item", ctx.Err())
		}
	}
}

// Len reports the current occupancy. The value is advisory under concurrent
// use.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot returns a copy of the queued items in FIFO order.
func (q *Queue[T]) Snapshot() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}

// RemoveWhere drops every item for which remove returns true, preserving the
// order of the rest, and returns how many were dropped.
func (q *Queue[T]) RemoveWhere(remove func(T) bool) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	removed := 0
	for _, item := range q.items {
		if remove(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	var zero T
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = zero
	}
	q.items = kept
	if removed > 0 {
		broadcast(&q.notFull)
	}
	return removed
}

// broadcast wakes every goroutine waiting on ch. Callers must hold q.mu.
func broadcast(ch *chan struct{}) {
	close(*ch)
	*ch = make(chan struct{})
}
