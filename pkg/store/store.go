package store

import (
	"context"
	"time"

	"tableflip.dev/tick/pkg/task"
)

// Snapshot is one complete result set for an owner's task query. The stream
// is full-replace: consumers discard everything they hold and keep exactly
// these tasks. A terminal listen failure arrives as the final item with Err
// set; the channel closes after it.
type Snapshot struct {
	Tasks []*task.Task
	Err   error
}

// Update is a partial document patch. Nil fields are left untouched.
// ClearDue removes the due date; it wins over Due.
type Update struct {
	Text     *string
	Status   *task.Status
	Due      *time.Time
	ClearDue bool
}

// Store is the remote task collection boundary: a subscribable owner-scoped
// query plus independent, fire-and-forget mutation requests. Mutations are
// never reflected locally by the caller; the next snapshot is the only path
// to visibility.
type Store interface {
	// Listen opens a live query scoped to ownerID and streams full result
	// sets until ctx is cancelled or the listen terminally fails.
	Listen(ctx context.Context, ownerID string) (<-chan Snapshot, error)

	// Create stores a new document and returns its assigned id. The store
	// assigns createdAt; the caller's value is ignored.
	Create(ctx context.Context, t *task.Task) (string, error)

	// Update applies a partial patch to the document with the given id.
	Update(ctx context.Context, id string, u Update) error

	// Remove permanently deletes the document with the given id.
	Remove(ctx context.Context, id string) error

	Close() error
}
