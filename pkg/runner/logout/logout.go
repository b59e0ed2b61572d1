package logout

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/confirm"
)

type Logout struct {
	Yes bool

	Client *app.Service

	In  io.Reader
	Out io.Writer
}

func (n *Logout) Do(ctx context.Context) error {
	u, err := n.Client.Owner()
	if err != nil {
		return err
	}

	gate := &confirm.Gate{}
	gate.Request(confirm.Action{
		Kind: confirm.KindSignOut,
		Do:   n.Client.SignOut,
	})

	if !n.Yes && !n.prompt(fmt.Sprintf("sign out %s? [y/N] ", u.Email)) {
		gate.Cancel()
		fmt.Fprintln(n.out(), "cancelled")
		return nil
	}
	if err := gate.Confirm(ctx); err != nil {
		return err
	}

	fmt.Fprintln(n.out(), "signed out")
	return nil
}

func (n *Logout) prompt(msg string) bool {
	fmt.Fprint(n.out(), msg)
	in := n.In
	if in == nil {
		in = os.Stdin
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (n *Logout) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return os.Stdout
}
