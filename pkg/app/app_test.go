package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/tick/pkg/auth"
	"tableflip.dev/tick/pkg/store"
	"tableflip.dev/tick/pkg/task"
)

type recordingStore struct {
	creates []*task.Task
	updates map[string]store.Update
	removes []string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{updates: make(map[string]store.Update)}
}

func (r *recordingStore) Listen(context.Context, string) (<-chan store.Snapshot, error) {
	return nil, errors.New("not listening")
}

func (r *recordingStore) Create(_ context.Context, t *task.Task) (string, error) {
	r.creates = append(r.creates, t)
	return "assigned-id", nil
}

func (r *recordingStore) Update(_ context.Context, id string, up store.Update) error {
	r.updates[id] = up
	return nil
}

func (r *recordingStore) Remove(_ context.Context, id string) error {
	r.removes = append(r.removes, id)
	return nil
}

func (r *recordingStore) Close() error { return nil }

type staticAuth struct {
	user      *auth.User
	signedOut bool
}

func (a *staticAuth) CurrentUser() *auth.User { return a.user }
func (a *staticAuth) SignOut(context.Context) error {
	a.signedOut = true
	a.user = nil
	return nil
}

func service(rs *recordingStore) *Service {
	return &Service{
		Store: rs,
		Auth:  &staticAuth{user: &auth.User{UID: "uid-1", Email: "pat@example.com"}},
	}
}

func TestAddScopesToOwner(t *testing.T) {
	rs := newRecordingStore()
	s := service(rs)

	created, err := s.Add(context.Background(), "  walk the dog  ", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID != "assigned-id" {
		t.Fatalf("expected store-assigned id, got %q", created.ID)
	}
	if len(rs.creates) != 1 {
		t.Fatalf("expected one create, got %d", len(rs.creates))
	}
	got := rs.creates[0]
	if got.Owner != "uid-1" || got.Text != "walk the dog" || got.Status != task.Pending {
		t.Fatalf("unexpected create: %+v", got)
	}
}

func TestAddEmptyTextNeverReachesStore(t *testing.T) {
	rs := newRecordingStore()
	s := service(rs)

	if _, err := s.Add(context.Background(), "   ", nil); !errors.Is(err, task.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if len(rs.creates) != 0 {
		t.Fatal("rejected add must not issue a request")
	}
}

func TestAddRequiresIdentity(t *testing.T) {
	rs := newRecordingStore()
	s := &Service{Store: rs, Auth: &staticAuth{}}

	if _, err := s.Add(context.Background(), "walk the dog", nil); !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
}

func TestToggleComputesFromCallerCopy(t *testing.T) {
	rs := newRecordingStore()
	s := service(rs)

	if err := s.Toggle(context.Background(), &task.Task{ID: "t1", Status: task.Pending}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	up := rs.updates["t1"]
	if up.Status == nil || *up.Status != task.Completed {
		t.Fatalf("expected completed, got %+v", up)
	}

	if err := s.Toggle(context.Background(), &task.Task{ID: "t1", Status: task.Completed}); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	up = rs.updates["t1"]
	if up.Status == nil || *up.Status != task.Pending {
		t.Fatalf("expected pending, got %+v", up)
	}
}

func TestUpdateClearsDueWhenNil(t *testing.T) {
	rs := newRecordingStore()
	s := service(rs)

	due := time.Now().Add(time.Hour)
	if err := s.Update(context.Background(), "t1", "revised", &due); err != nil {
		t.Fatalf("update: %v", err)
	}
	up := rs.updates["t1"]
	if up.Text == nil || *up.Text != "revised" || up.Due == nil || up.ClearDue {
		t.Fatalf("unexpected update: %+v", up)
	}

	if err := s.Update(context.Background(), "t1", "revised again", nil); err != nil {
		t.Fatalf("update clearing due: %v", err)
	}
	up = rs.updates["t1"]
	if !up.ClearDue || up.Due != nil {
		t.Fatalf("nil due must clear dueDate, got %+v", up)
	}
}

func TestUpdateEmptyTextRejected(t *testing.T) {
	rs := newRecordingStore()
	s := service(rs)

	if err := s.Update(context.Background(), "t1", " ", nil); !errors.Is(err, task.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if len(rs.updates) != 0 {
		t.Fatal("rejected update must not issue a request")
	}
}

func TestDelete(t *testing.T) {
	rs := newRecordingStore()
	s := service(rs)

	if err := s.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(rs.removes) != 1 || rs.removes[0] != "t1" {
		t.Fatalf("unexpected removes: %v", rs.removes)
	}
}

func TestSignOut(t *testing.T) {
	fa := &staticAuth{user: &auth.User{UID: "uid-1"}}
	s := &Service{Store: newRecordingStore(), Auth: fa}

	if err := s.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if !fa.signedOut {
		t.Fatal("provider not signed out")
	}
	if _, err := s.Owner(); !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity after sign out, got %v", err)
	}
}
