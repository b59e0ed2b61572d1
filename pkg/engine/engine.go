package engine

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"tableflip.dev/tick/pkg/store"
	"tableflip.dev/tick/pkg/task"
)

// ErrNoOwner rejects subscriptions without an owner identity.
var ErrNoOwner = errors.New("engine: owner identity required")

// Event is one delivery on a subscription: either the full ordered task
// collection after a snapshot replace, or a terminal subscription error.
// After an Err delivery the engine is unsubscribed and must be explicitly
// restarted with Subscribe.
type Event struct {
	Tasks []*task.Task
	Err   error
}

// Engine mirrors the remote task collection for one owner identity. The
// snapshot goroutine is the only writer; readers see either the previous
// collection or the new one, never a partial replace.
type Engine struct {
	store store.Store

	mu    sync.RWMutex
	tasks []*task.Task
	sub   *Subscription
}

func New(s store.Store) *Engine {
	return &Engine{store: s}
}

// Subscription is one live owner-scoped listen. Cancel releases the remote
// listener and may be called any number of times, including on a
// subscription that already failed or was replaced.
type Subscription struct {
	Owner string

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	events chan Event
}

// Events delivers ordered snapshots and, at most once, a terminal error.
// The channel closes when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

func (s *Subscription) deliver(ev Event) {
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

// Subscribe opens a live listen scoped to ownerID. Exactly one subscription
// is live per engine: an existing one is cancelled before the new listen
// opens, so switching identities never leaks a listener.
func (e *Engine) Subscribe(ctx context.Context, ownerID string) (*Subscription, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrNoOwner
	}

	e.mu.Lock()
	prev := e.sub
	e.mu.Unlock()
	prev.Cancel()

	lctx, cancel := context.WithCancel(ctx)
	ch, err := e.store.Listen(lctx, ownerID)
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{
		Owner:  ownerID,
		ctx:    lctx,
		cancel: cancel,
		events: make(chan Event, 8),
	}

	e.mu.Lock()
	e.sub = sub
	e.tasks = nil
	e.mu.Unlock()

	go e.pump(sub, ch)
	return sub, nil
}

func (e *Engine) pump(sub *Subscription, ch <-chan store.Snapshot) {
	defer close(sub.events)
	for snap := range ch {
		if snap.Err != nil {
			e.drop(sub)
			sub.deliver(Event{Err: snap.Err})
			return
		}
		ordered := Order(snap.Tasks)

		e.mu.Lock()
		if e.sub != sub {
			// Replaced by a newer subscription; stop touching shared state.
			e.mu.Unlock()
			return
		}
		e.tasks = ordered
		e.mu.Unlock()

		sub.deliver(Event{Tasks: ordered})
	}
	e.drop(sub)
}

func (e *Engine) drop(sub *Subscription) {
	e.mu.Lock()
	if e.sub == sub {
		e.sub = nil
	}
	e.mu.Unlock()
}

// Subscribed reports whether a live subscription exists.
func (e *Engine) Subscribed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sub != nil
}

// Tasks returns the current synchronized collection in display order.
func (e *Engine) Tasks() []*task.Task {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*task.Task, len(e.tasks))
	copy(out, e.tasks)
	return out
}

// Task looks up a synchronized task by id.
func (e *Engine) Task(id string) (*task.Task, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, t := range e.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Order applies the display ordering to a snapshot: pending before
// completed, then createdAt descending. Tasks whose createdAt the store has
// not assigned yet sort after their status group's dated tasks; remaining
// ties break on id so the ordering is stable across deliveries. Duplicate
// ids keep their first occurrence.
func Order(tasks []*task.Task) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if t.ID != "" {
			if _, dup := seen[t.ID]; dup {
				continue
			}
			seen[t.ID] = struct{}{}
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i], out[j]
		if left.Status != right.Status {
			return left.Status == task.Pending
		}
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.After(rt)
		}
	})
	return out
}

// FirstSnapshot subscribes, waits for a single delivery, and cancels. One-
// shot commands use it as their read surface so the listen stream stays the
// only way task state enters the program.
func FirstSnapshot(ctx context.Context, e *Engine, ownerID string) ([]*task.Task, error) {
	sub, err := e.Subscribe(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	defer sub.Cancel()

	select {
	case ev, ok := <-sub.Events():
		if !ok {
			return nil, errors.New("engine: subscription closed before first snapshot")
		}
		if ev.Err != nil {
			return nil, ev.Err
		}
		return ev.Tasks, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
