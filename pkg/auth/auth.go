package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tableflip.dev/tick/pkg/store"
)

// User is the authenticated owner identity. Every task query and write is
// scoped to its UID.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Provider exposes the current identity and sign-out. Credential flows live
// outside this program; the session is established by `tick login` and the
// provider only reads and clears it.
type Provider interface {
	CurrentUser() *User
	SignOut(ctx context.Context) error
}

const sessionFile = ".session.json"

// Load reads the persisted session, if any, from the store root.
func Load(cfg store.Config) (Provider, error) {
	if cfg == nil {
		var err error
		cfg, err = store.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	path := sessionPath(cfg)
	p := &sessionProvider{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("auth: read session: %w", err)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("auth: parse session: %w", err)
	}
	if strings.TrimSpace(u.UID) != "" {
		p.user = &u
	}
	return p, nil
}

// SignIn persists the session so subsequent invocations see the identity.
func SignIn(cfg store.Config, u User) error {
	u.UID = strings.TrimSpace(u.UID)
	u.Email = strings.TrimSpace(u.Email)
	if u.UID == "" {
		return errors.New("auth: uid required")
	}
	path := sessionPath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("auth: ensure session directory: %w", err)
	}
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("auth: write session: %w", err)
	}
	return os.Rename(tmp, path)
}

func sessionPath(cfg store.Config) string {
	return filepath.Join(cfg.BasePath(), sessionFile)
}

type sessionProvider struct {
	path string

	mu   sync.Mutex
	user *User
}

func (p *sessionProvider) CurrentUser() *User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// SignOut clears the session. Signing out while signed out is a no-op.
func (p *sessionProvider) SignOut(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.user = nil
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("auth: clear session: %w", err)
	}
	return nil
}
