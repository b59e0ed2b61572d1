package login

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tableflip.dev/tick/pkg/auth"
	"tableflip.dev/tick/pkg/store"
)

type Login struct {
	Email string
	UID   string

	Config store.Config

	Out io.Writer
}

func (n *Login) Do(ctx context.Context) error {
	email := strings.TrimSpace(n.Email)
	if email == "" {
		return errors.New("an email is required to sign in")
	}
	uid := strings.TrimSpace(n.UID)
	if uid == "" {
		uid = email
	}

	if err := auth.SignIn(n.Config, auth.User{UID: uid, Email: email}); err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Welcome, %s\n", email)
	return nil
}
