package services

import (
	"context"
	"sync"
)

// RequestTracker remembers the newest in-flight load per logical resource.
// Beginning a load for a key cancels the load it supersedes.
type RequestTracker struct {
	mu       sync.Mutex
	seq      uint64
	inflight map[string]*Ticket
}

// Ticket identifies one tracked load
type Ticket struct {
	tracker *RequestTracker
	key     string
	id      uint64
	cancel  context.CancelFunc
}

func NewRequestTracker() *RequestTracker {
	return &RequestTracker{inflight: make(map[string]*Ticket)}
}

// Begin registers a load for key and returns a context that is cancelled
// once a newer load for the same key begins.
func (t *RequestTracker) Begin(ctx context.Context, key string) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	ticket := &Ticket{tracker: t, key: key, id: t.seq, cancel: cancel}
	if previous, ok := t.inflight[key]; ok {
		previous.cancel()
	}
	t.inflight[key] = ticket
	return ctx, ticket
}

// Superseded reports whether a newer load for the same key has begun or the
// key was cancelled.
func (tk *Ticket) Superseded() bool {
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	current, ok := tk.tracker.inflight[tk.key]
	return !ok || current.id != tk.id
}

// Finish releases the ticket. It returns ErrSupersededRequest when the result
// of this load must be discarded.
func (tk *Ticket) Finish() error {
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	defer tk.cancel()

	current, ok := tk.tracker.inflight[tk.key]
	if !ok || current.id != tk.id {
		return ErrSupersededRequest
	}
	delete(tk.tracker.inflight, tk.key)
	return nil
}

// Cancel aborts the in-flight load for key, if any
func (t *RequestTracker) Cancel(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	ticket, ok := t.inflight[key]
	if !ok {
		return false
	}
	ticket.cancel()
	delete(t.inflight, key)
	return true
}

func (t *RequestTracker) InFlight(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.inflight[key]
	return ok
}
