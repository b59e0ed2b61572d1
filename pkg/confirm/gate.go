package confirm

import (
	"context"
	"sync"
)

// Kind names what a pending confirmation would do.
type Kind int

const (
	KindNone Kind = iota
	KindDeleteTask
	KindSignOut
)

func (k Kind) String() string {
	switch k {
	case KindDeleteTask:
		return "delete task"
	case KindSignOut:
		return "sign out"
	}
	return "none"
}

// Action is a destructive operation held until the user confirms it.
type Action struct {
	Kind   Kind
	TaskID string
	Do     func(ctx context.Context) error
}

// Gate holds at most one armed action. Requesting a new one replaces the
// old, so the action that runs on confirm is always the latest request.
type Gate struct {
	mu    sync.Mutex
	armed *Action
}

// Request arms the gate with an action, replacing any pending one.
func (g *Gate) Request(a Action) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.armed = &a
}

// Armed returns the pending action, if any.
func (g *Gate) Armed() (Action, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.armed == nil {
		return Action{}, false
	}
	return *g.armed, true
}

// Cancel disarms the gate without running anything. Safe when idle.
func (g *Gate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.armed = nil
}

// Confirm disarms the gate and runs the pending action exactly once. A
// confirm with nothing armed is a no-op.
func (g *Gate) Confirm(ctx context.Context) error {
	g.mu.Lock()
	a := g.armed
	g.armed = nil
	g.mu.Unlock()

	if a == nil || a.Do == nil {
		return nil
	}
	return a.Do(ctx)
}
