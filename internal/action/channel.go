package action

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/zhubert/panes/internal/errors"
)

// queue is the shared state behind a Sender/Receiver pair. It is unbounded:
// producers never block, the single consumer takes items in FIFO order.
type queue struct {
	mu        sync.Mutex
	items     []Action
	producers int
	closed    bool

	ready chan struct{} // holds one token while items may be pending
	done  chan struct{} // closed when no producer remains or the receiver closes
}

func (q *queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Sender is a producer handle. Every handle must be closed; the receiver sees
// end-of-stream once the last one is.
type Sender struct {
	q        *queue
	released atomic.Bool
}

// Receiver is the single consumer handle owned by the dispatcher.
type Receiver struct {
	q *queue
}

// NewChannel creates an unbounded multi-producer single-consumer queue and
// returns its first producer handle and its receiver.
func NewChannel() (*Sender, *Receiver) {
	q := &queue{
		producers: 1,
		ready:     make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	return &Sender{q: q}, &Receiver{q: q}
}

// Send enqueues a without blocking. It fails only when the handle was released
// or the channel is closed.
func (s *Sender) Send(a Action) error {
	if s == nil || s.released.Load() {
		return errors.ChannelClosed()
	}
	q := s.q
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return errors.ChannelClosed()
	}
	q.items = append(q.items, a)
	q.mu.Unlock()
	q.signal()
	return nil
}

// Clone returns a new producer handle on the same channel. Cloning a released
// handle or a closed channel yields a handle whose Send always fails.
func (s *Sender) Clone() *Sender {
	q := s.q
	q.mu.Lock()
	defer q.mu.Unlock()

	c := &Sender{q: q}
	if q.closed || s.released.Load() {
		c.released.Store(true)
		return c
	}
	q.producers++
	return c
}

// Close releases this handle. Calling it more than once is a no-op.
func (s *Sender) Close() {
	if s == nil || s.released.Swap(true) {
		return
	}
	q := s.q
	q.mu.Lock()
	q.producers--
	last := q.producers == 0 && !q.closed
	if last {
		q.closed = true
	}
	q.mu.Unlock()
	if last {
		close(q.done)
	}
}

// Ready delivers a token when actions may be pending. It does not consume
// anything; a token can be stale, so callers Drain and tolerate an empty result.
func (r *Receiver) Ready() <-chan struct{} {
	return r.q.ready
}

// Done is closed once the channel is closed. Actions queued before that are
// still returned by Drain.
func (r *Receiver) Done() <-chan struct{} {
	return r.q.done
}

// Drain removes and returns every queued action in enqueue order. Actions sent
// while the caller processes the result wait for the next Drain.
func (r *Receiver) Drain() []Action {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued actions.
func (r *Receiver) Len() int {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Finished reports end-of-stream: the channel is closed and nothing is queued.
func (r *Receiver) Finished() bool {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && len(q.items) == 0
}

// Recv blocks for the next action. It returns io.EOF at end-of-stream and the
// context error if ctx is cancelled first.
func (r *Receiver) Recv(ctx context.Context) (Action, error) {
	q := r.q
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			a := q.items[0]
			q.items = q.items[1:]
			more := len(q.items) > 0
			q.mu.Unlock()
			if more {
				q.signal()
			}
			return a, nil
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return NoAction, io.EOF
		}

		select {
		case <-q.ready:
		case <-q.done:
		case <-ctx.Done():
			return NoAction, ctx.Err()
		}
	}
}

// Close drops the receiving end. Subsequent sends fail and queued actions are
// discarded.
func (r *Receiver) Close() {
	q := r.q
	q.mu.Lock()
	wasClosed := q.closed
	q.closed = true
	q.items = nil
	q.mu.Unlock()
	if !wasClosed {
		close(q.done)
	}
}
