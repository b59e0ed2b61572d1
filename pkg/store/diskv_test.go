package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/tick/pkg/task"
)

type testConfig struct {
	path string
}

func (t testConfig) Backend() Backend    { return BackendFile }
func (t testConfig) BasePath() string    { return t.path }
func (t testConfig) Project() string     { return "" }
func (t testConfig) Credentials() string { return "" }

func mustOpen(t *testing.T) Store {
	t.Helper()
	s, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return s
}

func mustCreate(t *testing.T, s Store, owner, text string) string {
	t.Helper()
	tk, err := task.New(owner, text, nil)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	id, err := s.Create(context.Background(), tk)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return id
}

func ownerTasks(t *testing.T, s Store, owner string) []*task.Task {
	t.Helper()
	fs, ok := s.(*filestore)
	if !ok {
		t.Fatalf("expected filestore, got %T", s)
	}
	return fs.list(context.Background(), owner)
}

func TestCreateAssignsIDAndCreated(t *testing.T) {
	s := mustOpen(t)
	id := mustCreate(t, s, "uid-1", "Buy milk")
	if id == "" {
		t.Fatal("expected assigned id")
	}

	tasks := ownerTasks(t, s, "uid-1")
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != id {
		t.Fatalf("expected id %q, got %q", id, got.ID)
	}
	if got.Created.IsZero() {
		t.Fatal("expected store-assigned createdAt")
	}
	if got.Status != task.Pending {
		t.Fatalf("expected pending, got %q", got.Status)
	}
	if got.Owner != "uid-1" {
		t.Fatalf("expected owner uid-1, got %q", got.Owner)
	}
}

func TestCreatedNeverRunsBackwards(t *testing.T) {
	s := mustOpen(t)
	fs := s.(*filestore)
	fs.lastCreated = time.Now().UTC().Add(time.Hour)

	id := mustCreate(t, s, "uid-1", "Clock skew")
	for _, tk := range ownerTasks(t, s, "uid-1") {
		if tk.ID == id && tk.Created.Time.Before(fs.lastCreated) {
			t.Fatalf("createdAt %v ran backwards past %v", tk.Created.Time, fs.lastCreated)
		}
	}
}

func TestListScopedToOwner(t *testing.T) {
	s := mustOpen(t)
	mustCreate(t, s, "uid-1", "Mine")
	mustCreate(t, s, "uid-2", "Theirs")

	tasks := ownerTasks(t, s, "uid-1")
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task for uid-1, got %d", len(tasks))
	}
	if tasks[0].Text != "Mine" {
		t.Fatalf("expected uid-1's task, got %q", tasks[0].Text)
	}
}

func TestOwnerIDsAreOpaque(t *testing.T) {
	s := mustOpen(t)

	// base64 of "ab?" contains a path separator; hex encoding must not.
	owners := []string{"ab?", "pat+test@example.com", "uid/with/slashes", "ümläut"}
	for _, owner := range owners {
		id := mustCreate(t, s, owner, "task for "+owner)

		tasks := ownerTasks(t, s, owner)
		if len(tasks) != 1 {
			t.Fatalf("owner %q: expected 1 task, got %d", owner, len(tasks))
		}
		if tasks[0].ID != id || tasks[0].Owner != owner {
			t.Fatalf("owner %q: got id %q owner %q", owner, tasks[0].ID, tasks[0].Owner)
		}
	}
}

func TestUpdateReplacesFields(t *testing.T) {
	s := mustOpen(t)
	ctx := context.Background()
	id := mustCreate(t, s, "uid-1", "Buy milk")

	completed := task.Completed
	text := "Buy oat milk"
	due := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	if err := s.Update(ctx, id, Update{Text: &text, Status: &completed, Due: &due}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := ownerTasks(t, s, "uid-1")[0]
	if got.Text != "Buy oat milk" || got.Status != task.Completed {
		t.Fatalf("unexpected task after update: %+v", got)
	}
	if at, ok := got.DueAt(); !ok || !at.Equal(due) {
		t.Fatalf("expected due %v, got %v (%v)", due, at, ok)
	}

	if err := s.Update(ctx, id, Update{ClearDue: true}); err != nil {
		t.Fatalf("clear due: %v", err)
	}
	got = ownerTasks(t, s, "uid-1")[0]
	if _, ok := got.DueAt(); ok {
		t.Fatal("expected due date cleared")
	}
}

func TestUpdateMissingTask(t *testing.T) {
	s := mustOpen(t)
	text := "nope"
	if err := s.Update(context.Background(), "missing", Update{Text: &text}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveDeletesDocument(t *testing.T) {
	s := mustOpen(t)
	ctx := context.Background()
	id := mustCreate(t, s, "uid-1", "Buy milk")

	if err := s.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := ownerTasks(t, s, "uid-1"); len(got) != 0 {
		t.Fatalf("expected no tasks, got %d", len(got))
	}
	if err := s.Remove(ctx, id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}
