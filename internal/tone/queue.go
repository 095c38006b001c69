// Package tone renders alarm commands as square-wave tone patterns on a
// digital output line. A single worker goroutine (the actuator) owns the
// line and consumes commands from an unbounded FIFO queue.
package tone

import (
	"errors"
	"sync"

	"github.com/sweeney/alarm-clock/internal/logic"
)

// ErrClosed is returned by Send once the queue has been closed.
var ErrClosed = errors.New("tone: queue closed")

// Queue is an unbounded FIFO of alarm commands. Send never blocks and
// never fails for capacity reasons; Receive blocks the consumer until a
// command arrives or the queue is closed. Single producer (detection
// loop), single consumer (actuator).
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []logic.Command
	closed bool
}

// NewQueue creates an empty open queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Send enqueues a command. It returns ErrClosed if the consumer side has
// been shut down; a dropped alarm tone is non-fatal to scheduling, so
// callers log and continue.
func (q *Queue) Send(cmd logic.Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.items = append(q.items, cmd)
	q.cond.Signal()
	return nil
}

// Receive blocks until a command is available or the queue is closed.
// Once closed, remaining commands are still delivered in order; after
// the queue drains, Receive returns ok=false and the consumer should
// terminate.
func (q *Queue) Receive() (logic.Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return logic.Command{}, false
	}

	cmd := q.items[0]
	q.items = q.items[1:]
	return cmd, true
}

// Close marks the queue closed and wakes a blocked consumer.
// Safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
