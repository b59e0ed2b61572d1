package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tick/pkg/task"
)

// ErrNotFound reports a mutation aimed at a document that does not exist.
var ErrNotFound = errors.New("store: task not found")

// Load opens the Store selected by the config. A nil config loads the
// default one.
func Load(cfg Config) (Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Backend() {
	case BackendFirestore:
		return openFirestore(cfg)
	case BackendFile, "":
		return openFile(cfg)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func openFile(cfg Config) (Store, error) {
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	return &filestore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// filestore keeps one JSON document per task under a per-owner directory.
// It assigns ids and createdAt the way a remote store would, so the rest of
// the system sees identical semantics from both backends.
type filestore struct {
	d        *diskv.Diskv
	basePath string

	mu          sync.Mutex
	lastCreated time.Time
}

func (s *filestore) read(key string) (*task.Task, error) {
	val, err := s.d.Read(key)
	if err != nil {
		return nil, err
	}
	t := &task.Task{}
	if err := json.Unmarshal(val, t); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	t.ID = pk.FileName
	if t.Owner == "" && len(pk.Path) > 0 {
		t.Owner = fromOwner(pk.Path[0])
	}
	if !t.Status.Valid() {
		t.Status = task.Pending
	}
	return t, nil
}

func (s *filestore) list(ctx context.Context, ownerID string) []*task.Task {
	ok := toOwner(ownerID)
	all := make([]*task.Task, 0)
	for key := range s.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); len(pk.Path) == 0 || pk.Path[0] != ok {
			continue
		}
		t, err := s.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, t)
	}
	return all
}

func (s *filestore) find(ctx context.Context, id string) (string, *task.Task, error) {
	for key := range s.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); pk.FileName == id {
			t, err := s.read(key)
			if err != nil {
				return "", nil, err
			}
			return key, t, nil
		}
	}
	return "", nil, ErrNotFound
}

func (s *filestore) Create(ctx context.Context, t *task.Task) (string, error) {
	if t == nil {
		return "", errors.New("store: nil task")
	}
	if strings.TrimSpace(t.Owner) == "" {
		return "", errors.New("store: owner required")
	}
	doc := t.Clone()
	doc.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
	doc.Created = task.Timestamp{Time: s.nextCreated()}
	if !doc.Status.Valid() {
		doc.Status = task.Pending
	}
	if err := s.write(doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (s *filestore) Update(ctx context.Context, id string, u Update) error {
	_, t, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if u.Text != nil {
		t.Text = strings.TrimSpace(*u.Text)
	}
	if u.Status != nil {
		if !u.Status.Valid() {
			return fmt.Errorf("store: invalid status %q", *u.Status)
		}
		t.Status = *u.Status
	}
	switch {
	case u.ClearDue:
		t.Due = nil
	case u.Due != nil:
		t.Due = &task.Timestamp{Time: *u.Due}
	}
	return s.write(t)
}

func (s *filestore) Remove(ctx context.Context, id string) error {
	key, _, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.d.Erase(key)
}

func (s *filestore) Close() error {
	return nil
}

func (s *filestore) write(t *task.Task) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.d.Write(toKey(t), data)
}

// nextCreated assigns server timestamps that never run backwards, keeping
// the createdAt ordering contract even if the wall clock steps.
func (s *filestore) nextCreated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if now.Before(s.lastCreated) {
		now = s.lastCreated
	}
	s.lastCreated = now
	return now
}

func (s *filestore) ensureOwnerDir(ownerID string) error {
	if err := os.MkdirAll(filepath.Join(s.basePath, toOwner(ownerID)), 0o755); err != nil {
		return fmt.Errorf("store: ensure owner directory: %w", err)
	}
	return nil
}

func (s *filestore) ownerDir(ownerID string) string {
	return filepath.Join(s.basePath, toOwner(ownerID))
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `owner-id`. Owner is hex encoded so the dash split in the
// path transform stays unambiguous and any owner string yields a safe
// directory name.
func toKey(t *task.Task) string {
	return fmt.Sprintf("%s-%s", toOwner(t.Owner), t.ID)
}

func toOwner(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromOwner(s string) string {
	owner, err := hex.DecodeString(s)
	if err != nil {
		return ""
	}
	return string(owner)
}
