package catalog

import (
	"context"
	"sync"
)

// Tracker enforces "last request wins" per key. Starting a new request for a
// key cancels the one before it, and a finished request can check whether it
// is still the latest before its result is used.
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	active map[string]*flight
}

type flight struct {
	id     uint64
	cancel context.CancelFunc
}

// Ticket identifies one tracked request
type Ticket struct {
	key string
	id  uint64
}

func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]*flight)}
}

// Begin registers a new request for key and cancels the previous one
func (t *Tracker) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.active[key]; ok {
		prev.cancel()
	}
	t.seq++
	t.active[key] = &flight{id: t.seq, cancel: cancel}
	return ctx, Ticket{key: key, id: t.seq}
}

// Current reports whether tk is still the latest request for its key
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, ok := t.active[tk.key]
	return ok && f.id == tk.id
}

// End releases tk. It is a no-op for tickets that were superseded.
func (t *Tracker) End(tk Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if f, ok := t.active[tk.key]; ok && f.id == tk.id {
		f.cancel()
		delete(t.active, tk.key)
	}
}
