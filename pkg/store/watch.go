package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Listen streams full result sets for the owner until ctx is cancelled. The
// first snapshot is delivered immediately; afterwards a filesystem watcher
// coalesces write bursts and redelivers the complete owner collection. The
// channel is closed once ctx is done or the watcher terminally fails.
func (s *filestore) Listen(ctx context.Context, ownerID string) (<-chan Snapshot, error) {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	if err := s.ensureOwnerDir(ownerID); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(s.ownerDir(ownerID)); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch owner directory: %w", err)
	}

	out := make(chan Snapshot, 1)

	go func() {
		defer close(out)
		defer closeWatcher()

		send := func(snap Snapshot) bool {
			select {
			case out <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		}

		reload := func() Snapshot {
			return Snapshot{Tasks: s.list(ctx, ownerID)}
		}

		if !send(reload()) {
			return
		}

		throttle := newReloadThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-throttle.C():
				if !send(reload()) {
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					send(Snapshot{Err: fmt.Errorf("store: watcher closed")})
					return
				}
				send(Snapshot{Err: fmt.Errorf("store: watch: %w", err)})
				return
			case _, ok := <-watcher.Events:
				if !ok {
					send(Snapshot{Err: fmt.Errorf("store: watcher closed")})
					return
				}
				// Any event under the owner directory invalidates the whole
				// result set; the reload is always a full replace.
				throttle.Trigger()
			}
		}
	}()

	return out, nil
}

// reloadThrottle coalesces rapid change notifications so a burst of writes
// produces a single snapshot reload instead of one per file touched.
type reloadThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	delay   time.Duration
	fire    chan struct{}
}

func newReloadThrottle(delay time.Duration) *reloadThrottle {
	return &reloadThrottle{
		delay: delay,
		fire:  make(chan struct{}, 1),
	}
}

func (t *reloadThrottle) C() <-chan struct{} {
	return t.fire
}

func (t *reloadThrottle) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending {
		return
	}
	t.pending = true
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		t.pending = false
		t.timer = nil
		t.mu.Unlock()
		select {
		case t.fire <- struct{}{}:
		default:
		}
	})
}

func (t *reloadThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = false
	t.mu.Unlock()
}
