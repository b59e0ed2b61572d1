package edit

import (
	"context"
	"strings"
	"sync"
	"time"

	"tableflip.dev/tick/pkg/task"
)

// Updater applies an edit to the remote store. A nil due clears the
// existing dueDate rather than keeping it.
type Updater interface {
	Update(ctx context.Context, id, text string, due *time.Time) error
}

// Session holds at most one in-progress edit. Starting an edit while one
// is open silently replaces it; the prior draft is discarded.
type Session struct {
	mu     sync.Mutex
	taskID string
	text   string
	due    *time.Time
}

// Start opens an edit for the given task, seeding the draft from its
// current text and due date.
func (s *Session) Start(t *task.Task) {
	if t == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskID = t.ID
	s.text = t.Text
	s.due = nil
	if at, ok := t.DueAt(); ok {
		s.due = &at
	}
}

// Cancel discards the draft and returns to idle. Safe to call when idle.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.taskID = ""
	s.text = ""
	s.due = nil
}

// Editing reports the task under edit, if any.
func (s *Session) Editing() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taskID, s.taskID != ""
}

// Draft returns the current draft text and due date.
func (s *Session) Draft() (string, *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.due
}

func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taskID == "" {
		return
	}
	s.text = text
}

func (s *Session) SetDue(due *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taskID == "" {
		return
	}
	s.due = due
}

// Save validates the draft and submits it. An empty draft returns
// ErrEmptyText and the session stays open so the user can keep typing.
// Otherwise the session returns to idle before the update is issued; a
// store failure is returned for display but does not reopen the edit.
func (s *Session) Save(ctx context.Context, up Updater) error {
	s.mu.Lock()
	if s.taskID == "" {
		s.mu.Unlock()
		return nil
	}
	text := strings.TrimSpace(s.text)
	if text == "" {
		s.mu.Unlock()
		return task.ErrEmptyText
	}
	id, due := s.taskID, s.due
	s.reset()
	s.mu.Unlock()

	return up.Update(ctx, id, text, due)
}

// Reconcile forces the session idle when the task under edit is no longer
// in the collection, reporting whether it did so.
func (s *Session) Reconcile(tasks []*task.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taskID == "" {
		return false
	}
	for _, t := range tasks {
		if t != nil && t.ID == s.taskID {
			return false
		}
	}
	s.reset()
	return true
}
