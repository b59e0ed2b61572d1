package task

import (
	"errors"
	"strings"
	"time"
)

// Status is the lifecycle state of a task. There are exactly two values;
// nothing in the engine introduces a third.
type Status string

const (
	Pending   Status = "pending"
	Completed Status = "completed"
)

func (s Status) Valid() bool {
	return s == Pending || s == Completed
}

// Flip returns the other status.
func (s Status) Flip() Status {
	if s == Pending {
		return Completed
	}
	return Pending
}

// ErrEmptyText rejects adds and edits whose text trims to nothing. The
// rejection happens locally, before any request is sent.
var ErrEmptyText = errors.New("task: text is empty")

// Task mirrors one document in the remote tasks collection. ID is the
// document name assigned by the store and is not persisted inside the
// document. The JSON tags are the persisted field contract and must not
// change shape.
type Task struct {
	ID      string     `json:"-"`
	Text    string     `json:"text"`
	Status  Status     `json:"status"`
	Due     *Timestamp `json:"dueDate,omitempty"`
	Created Timestamp  `json:"createdAt"`
	Owner   string     `json:"userId"`
}

// New builds a pending task for the given owner. The text is trimmed and
// must be non-empty; id and createdAt are left for the store to assign.
func New(owner, text string, due *time.Time) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	t := &Task{
		Text:   text,
		Status: Pending,
		Owner:  owner,
	}
	if due != nil {
		t.Due = &Timestamp{Time: *due}
	}
	return t, nil
}

// DueAt returns the due instant and whether one is set.
func (t *Task) DueAt() (time.Time, bool) {
	if t == nil || t.Due == nil || t.Due.IsZero() {
		return time.Time{}, false
	}
	return t.Due.Time, true
}

func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Due != nil {
		due := *t.Due
		cp.Due = &due
	}
	return &cp
}
