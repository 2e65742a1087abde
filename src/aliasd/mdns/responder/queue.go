package responder

import (
	"context"
	"sync"
	"time"

	"github.com/miekg/dns"
)

// Queue is an unbounded FIFO queue of DNS queries awaiting an answer.
//
// Any number of goroutines may push onto the queue. It is intended to have a
// single consumer.
type Queue struct {
	m     sync.Mutex
	items []*dns.Msg
	ready chan struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{
		ready: make(chan struct{}, 1),
	}
}

// Push adds m to the back of the queue. It never blocks.
func (q *Queue) Push(m *dns.Msg) {
	q.m.Lock()
	q.items = append(q.items, m)
	q.m.Unlock()

	q.notify()
}

// Pop removes the message at the front of the queue.
//
// It blocks until a message is available, d elapses or ctx is canceled. It
// returns false if no message was removed.
func (q *Queue) Pop(ctx context.Context, d time.Duration) (*dns.Msg, bool) {
	if m, ok := q.tryPop(); ok {
		return m, true
	}

	t := time.NewTimer(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, false
		case <-t.C:
			return q.tryPop()
		case <-q.ready:
			if m, ok := q.tryPop(); ok {
				return m, true
			}
		}
	}
}

// Len returns the number of messages in the queue.
func (q *Queue) Len() int {
	q.m.Lock()
	defer q.m.Unlock()

	return len(q.items)
}

func (q *Queue) tryPop() (*dns.Msg, bool) {
	q.m.Lock()
	defer q.m.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}

	m := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]

	// wake the next consumer if there is more work
	if len(q.items) != 0 {
		q.notify()
	}

	return m, true
}

// notify signals that the queue may be non-empty.
func (q *Queue) notify() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
