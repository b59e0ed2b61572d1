package countdown

import (
	"sync"
	"time"

	"tableflip.dev/tick/pkg/task"
)

// Tick is one countdown update for a tracked task.
type Tick struct {
	TaskID    string
	Remaining Remaining
}

type handle struct {
	due  time.Time
	stop chan struct{}
	once sync.Once
}

func (h *handle) halt() {
	h.once.Do(func() { close(h.stop) })
}

// Tracker runs one countdown per tracked due date and funnels ticks onto a
// single channel. Consumers that fall behind lose ticks rather than block
// the clocks; the next tick carries a fresh Remaining anyway.
type Tracker struct {
	interval time.Duration

	mu      sync.Mutex
	handles map[string]*handle
	closed  bool
	out     chan Tick
}

// NewTracker ticks at the given interval, defaulting to one second.
func NewTracker(interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Tracker{
		interval: interval,
		handles:  make(map[string]*handle),
		out:      make(chan Tick, 64),
	}
}

// Ticks delivers countdown updates. The channel is never closed; stop
// consuming after Close.
func (t *Tracker) Ticks() <-chan Tick {
	return t.out
}

// Track starts or restarts a countdown for the task. Tracking the same id
// with an unchanged due date is a no-op; a changed due date replaces the
// running countdown.
func (t *Tracker) Track(id string, due time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if h, ok := t.handles[id]; ok {
		if h.due.Equal(due) {
			return
		}
		h.halt()
	}
	h := &handle{due: due, stop: make(chan struct{})}
	t.handles[id] = h
	go t.run(id, h)
}

// Untrack stops the countdown for the task, if one is running.
func (t *Tracker) Untrack(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.handles[id]; ok {
		h.halt()
		delete(t.handles, id)
	}
}

// Sync reconciles the tracked set against the currently displayed tasks:
// pending tasks with a due date are tracked, everything else is dropped.
func (t *Tracker) Sync(tasks []*task.Task) {
	keep := make(map[string]struct{}, len(tasks))
	for _, tk := range tasks {
		if tk == nil || tk.Status != task.Pending {
			continue
		}
		due, ok := tk.DueAt()
		if !ok {
			continue
		}
		keep[tk.ID] = struct{}{}
		t.Track(tk.ID, due)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for id, h := range t.handles {
		if _, ok := keep[id]; ok {
			continue
		}
		h.halt()
		delete(t.handles, id)
	}
}

// Close stops every countdown. Idempotent.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	for id, h := range t.handles {
		h.halt()
		delete(t.handles, id)
	}
}

func (t *Tracker) run(id string, h *handle) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			select {
			case t.out <- Tick{TaskID: id, Remaining: Until(h.due, now)}:
			default:
			}
		}
	}
}
