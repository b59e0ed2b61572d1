package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tableflip.dev/tick/pkg/task"
)

const tasksCollection = "tasks"

func openFirestore(cfg Config) (Store, error) {
	if cfg.Project() == "" {
		return nil, errors.New("store: firestore backend requires a project")
	}
	var opts []option.ClientOption
	if cfg.Credentials() != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Credentials()))
	}
	client, err := firestore.NewClient(context.Background(), cfg.Project(), opts...)
	if err != nil {
		return nil, fmt.Errorf("store: open firestore: %w", err)
	}
	return &firestoreStore{client: client}, nil
}

type firestoreStore struct {
	client *firestore.Client
}

// document is the persisted field contract. dueDate travels as an ISO-8601
// string; createdAt is the server-assigned timestamp.
type document struct {
	Text    string    `firestore:"text"`
	Status  string    `firestore:"status"`
	Due     string    `firestore:"dueDate,omitempty"`
	Created time.Time `firestore:"createdAt,serverTimestamp"`
	Owner   string    `firestore:"userId"`
}

func (s *firestoreStore) Listen(ctx context.Context, ownerID string) (<-chan Snapshot, error) {
	q := s.client.Collection(tasksCollection).Where("userId", "==", ownerID)
	out := make(chan Snapshot, 1)

	go func() {
		defer close(out)
		it := q.Snapshots(ctx)
		defer it.Stop()
		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				select {
				case out <- Snapshot{Err: fmt.Errorf("store: listen: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
			docs, err := qs.Documents.GetAll()
			if err != nil {
				select {
				case out <- Snapshot{Err: fmt.Errorf("store: read snapshot: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
			tasks := make([]*task.Task, 0, len(docs))
			for _, doc := range docs {
				t, err := docToTask(doc)
				if err != nil {
					fmt.Fprintf(os.Stderr, "store: %s: %s\n", doc.Ref.ID, err)
					continue
				}
				tasks = append(tasks, t)
			}
			select {
			case out <- Snapshot{Tasks: tasks}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (s *firestoreStore) Create(ctx context.Context, t *task.Task) (string, error) {
	if t == nil {
		return "", errors.New("store: nil task")
	}
	if strings.TrimSpace(t.Owner) == "" {
		return "", errors.New("store: owner required")
	}
	stat := t.Status
	if !stat.Valid() {
		stat = task.Pending
	}
	doc := document{
		Text:   t.Text,
		Status: string(stat),
		Owner:  t.Owner,
	}
	if due, ok := t.DueAt(); ok {
		doc.Due = due.UTC().Format(time.RFC3339)
	}
	ref, _, err := s.client.Collection(tasksCollection).Add(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("store: create: %w", err)
	}
	return ref.ID, nil
}

func (s *firestoreStore) Update(ctx context.Context, id string, u Update) error {
	var ups []firestore.Update
	if u.Text != nil {
		ups = append(ups, firestore.Update{Path: "text", Value: strings.TrimSpace(*u.Text)})
	}
	if u.Status != nil {
		if !u.Status.Valid() {
			return fmt.Errorf("store: invalid status %q", *u.Status)
		}
		ups = append(ups, firestore.Update{Path: "status", Value: string(*u.Status)})
	}
	switch {
	case u.ClearDue:
		ups = append(ups, firestore.Update{Path: "dueDate", Value: firestore.Delete})
	case u.Due != nil:
		ups = append(ups, firestore.Update{Path: "dueDate", Value: u.Due.UTC().Format(time.RFC3339)})
	}
	if len(ups) == 0 {
		return nil
	}
	if _, err := s.client.Collection(tasksCollection).Doc(id).Update(ctx, ups); err != nil {
		return fmt.Errorf("store: update %s: %w", id, err)
	}
	return nil
}

func (s *firestoreStore) Remove(ctx context.Context, id string) error {
	if _, err := s.client.Collection(tasksCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("store: remove %s: %w", id, err)
	}
	return nil
}

func (s *firestoreStore) Close() error {
	return s.client.Close()
}

func docToTask(doc *firestore.DocumentSnapshot) (*task.Task, error) {
	var d document
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	stat := task.Status(d.Status)
	if !stat.Valid() {
		stat = task.Pending
	}
	t := &task.Task{
		ID:      doc.Ref.ID,
		Text:    d.Text,
		Status:  stat,
		Created: task.Timestamp{Time: d.Created},
		Owner:   d.Owner,
	}
	if d.Due != "" {
		due, err := task.ParseTime(d.Due)
		if err != nil {
			return nil, fmt.Errorf("parse dueDate: %w", err)
		}
		t.Due = &task.Timestamp{Time: due}
	}
	return t, nil
}
