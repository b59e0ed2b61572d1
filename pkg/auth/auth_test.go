package auth

import (
	"context"
	"testing"

	"tableflip.dev/tick/pkg/store"
)

type testConfig struct {
	path string
}

func (t testConfig) Backend() store.Backend { return store.BackendFile }
func (t testConfig) BasePath() string       { return t.path }
func (t testConfig) Project() string        { return "" }
func (t testConfig) Credentials() string    { return "" }

func TestSessionRoundTrip(t *testing.T) {
	cfg := testConfig{path: t.TempDir()}

	p, err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.CurrentUser() != nil {
		t.Fatal("expected no identity before sign-in")
	}

	if err := SignIn(cfg, User{UID: "uid-1", Email: "a@b.com"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	p, err = Load(cfg)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	u := p.CurrentUser()
	if u == nil || u.UID != "uid-1" || u.Email != "a@b.com" {
		t.Fatalf("unexpected identity: %+v", u)
	}
}

func TestSignInRequiresUID(t *testing.T) {
	cfg := testConfig{path: t.TempDir()}
	if err := SignIn(cfg, User{Email: "a@b.com"}); err == nil {
		t.Fatal("expected error for missing uid")
	}
}

func TestSignOutIdempotent(t *testing.T) {
	cfg := testConfig{path: t.TempDir()}
	if err := SignIn(cfg, User{UID: "uid-1"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	p, err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	ctx := context.Background()
	if err := p.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if p.CurrentUser() != nil {
		t.Fatal("expected identity cleared")
	}
	if err := p.SignOut(ctx); err != nil {
		t.Fatalf("second sign out should be a no-op, got %v", err)
	}

	p, err = Load(cfg)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if p.CurrentUser() != nil {
		t.Fatal("expected session file removed")
	}
}
