// Package bridge carries messages between the device session, the command
// dispatcher and the UI.
//
// A Queue is an unbounded, multi-producer, single-consumer FIFO backed by
// chanx. Send never drops; values pass through an internal ring buffer into
// the channel returned by Out in arrival order. Closing the queue lets
// whatever is still buffered drain before Out is closed, which is how a
// consumer observes the end of a stream.
package bridge

import (
	"context"
	"sync"

	"github.com/smallnest/chanx"
)

const initialCapacity = 16

// Queue is an unbounded FIFO with a channel-shaped receive side.
type Queue[T any] struct {
	mu     sync.RWMutex
	closed bool
	ch     *chanx.UnboundedChan[T]
}

// New creates an open queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{ch: chanx.NewUnboundedChan[T](context.Background(), initialCapacity)}
}

// Send appends v. It reports false once the queue has been closed; late
// producers such as notification callbacks racing a disconnect are ignored.
func (q *Queue[T]) Send(v T) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	q.ch.In <- v
	return true
}

// Out returns the receive side. It is closed once the queue is closed and
// every buffered value has been delivered.
func (q *Queue[T]) Out() <-chan T {
	return q.ch.Out
}

// TryRecv returns the next value if one is ready without blocking.
func (q *Queue[T]) TryRecv() (T, bool) {
	select {
	case v, ok := <-q.ch.Out:
		return v, ok
	default:
		var zero T
		return zero, false
	}
}

// Close stops accepting values. Closing twice is a no-op.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch.In)
}
