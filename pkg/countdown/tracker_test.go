package countdown

import (
	"testing"
	"time"

	"tableflip.dev/tick/pkg/task"
)

func waitTick(t *testing.T, tr *Tracker, id string) Tick {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case tick := <-tr.Ticks():
			if tick.TaskID == id {
				return tick
			}
		case <-deadline:
			t.Fatalf("timed out waiting for tick from %s", id)
		}
	}
}

func TestTrackerEmitsTicks(t *testing.T) {
	tr := NewTracker(10 * time.Millisecond)
	defer tr.Close()

	tr.Track("t1", time.Now().Add(time.Hour))
	tick := waitTick(t, tr, "t1")
	if tick.Remaining.Overdue {
		t.Fatalf("task an hour out should not be overdue: %+v", tick)
	}
}

func TestTrackerReportsOverdue(t *testing.T) {
	tr := NewTracker(10 * time.Millisecond)
	defer tr.Close()

	tr.Track("t1", time.Now().Add(-time.Minute))
	tick := waitTick(t, tr, "t1")
	if !tick.Remaining.Overdue {
		t.Fatalf("expected overdue tick, got %+v", tick)
	}
}

func TestUntrackStopsTicks(t *testing.T) {
	tr := NewTracker(10 * time.Millisecond)
	defer tr.Close()

	tr.Track("t1", time.Now().Add(time.Hour))
	waitTick(t, tr, "t1")
	tr.Untrack("t1")
	tr.Untrack("t1")

	// Drain anything in flight, then verify silence.
	time.Sleep(30 * time.Millisecond)
	for {
		select {
		case <-tr.Ticks():
		default:
			goto drained
		}
	}
drained:
	select {
	case tick := <-tr.Ticks():
		t.Fatalf("tick after untrack: %+v", tick)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSyncTracksPendingDueOnly(t *testing.T) {
	tr := NewTracker(10 * time.Millisecond)
	defer tr.Close()

	due := task.Timestamp{Time: time.Now().Add(time.Hour)}
	tr.Sync([]*task.Task{
		{ID: "due", Status: task.Pending, Due: &due},
		{ID: "no-due", Status: task.Pending},
		{ID: "done", Status: task.Completed, Due: &due},
	})

	tick := waitTick(t, tr, "due")
	if tick.TaskID != "due" {
		t.Fatalf("unexpected tick: %+v", tick)
	}

	tr.mu.Lock()
	_, noDue := tr.handles["no-due"]
	_, done := tr.handles["done"]
	tr.mu.Unlock()
	if noDue || done {
		t.Fatal("sync tracked a task without a pending due date")
	}

	// Dropping the task from the display drops its countdown.
	tr.Sync(nil)
	tr.mu.Lock()
	n := len(tr.handles)
	tr.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected empty tracked set, have %d", n)
	}
}

func TestCloseIdempotent(t *testing.T) {
	tr := NewTracker(10 * time.Millisecond)
	tr.Track("t1", time.Now().Add(time.Hour))
	tr.Close()
	tr.Close()
	tr.Track("t1", time.Now().Add(time.Hour)) // ignored after close

	tr.mu.Lock()
	n := len(tr.handles)
	tr.mu.Unlock()
	if n != 0 {
		t.Fatalf("track after close should be ignored, have %d handles", n)
	}
}
