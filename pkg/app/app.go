package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/tick/pkg/auth"
	"tableflip.dev/tick/pkg/store"
	"tableflip.dev/tick/pkg/task"
)

// Service provides high-level task operations over the remote store. It
// validates locally and scopes every write to the signed-in owner, so UIs
// and CLIs can share the same mutation path.
type Service struct {
	Store store.Store
	Auth  auth.Provider
}

var (
	ErrNoStore    = errors.New("app: no store configured")
	ErrNoIdentity = errors.New("app: not signed in")
)

// Owner resolves the signed-in user, or ErrNoIdentity.
func (s *Service) Owner() (*auth.User, error) {
	if s.Auth == nil {
		return nil, ErrNoIdentity
	}
	u := s.Auth.CurrentUser()
	if u == nil {
		return nil, ErrNoIdentity
	}
	return u, nil
}

// Add creates a pending task for the signed-in owner. Text that trims to
// nothing is rejected before any request is sent.
func (s *Service) Add(ctx context.Context, text string, due *time.Time) (*task.Task, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	u, err := s.Owner()
	if err != nil {
		return nil, err
	}
	t, err := task.New(u.UID, text, due)
	if err != nil {
		return nil, err
	}
	id, err := s.Store.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

// Toggle flips the task's status, computing the target state from the
// caller's copy rather than asking the store first.
func (s *Service) Toggle(ctx context.Context, t *task.Task) error {
	if s.Store == nil {
		return ErrNoStore
	}
	if t == nil || t.ID == "" {
		return errors.New("app: no task to toggle")
	}
	next := t.Status.Flip()
	return s.Store.Update(ctx, t.ID, store.Update{Status: &next})
}

// Update replaces the task's text and due date. A nil due clears any
// existing dueDate instead of leaving it behind.
func (s *Service) Update(ctx context.Context, id, text string, due *time.Time) error {
	if s.Store == nil {
		return ErrNoStore
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return task.ErrEmptyText
	}
	up := store.Update{Text: &text}
	if due != nil {
		up.Due = due
	} else {
		up.ClearDue = true
	}
	return s.Store.Update(ctx, id, up)
}

// Delete removes the task permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Store == nil {
		return ErrNoStore
	}
	if id == "" {
		return errors.New("app: no task to delete")
	}
	return s.Store.Remove(ctx, id)
}

// SignOut ends the session. The caller tears down any live subscription.
func (s *Service) SignOut(ctx context.Context) error {
	if s.Auth == nil {
		return ErrNoIdentity
	}
	return s.Auth.SignOut(ctx)
}
