package del

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/confirm"
	"tableflip.dev/tick/pkg/engine"
	"tableflip.dev/tick/pkg/printers"
)

type Delete struct {
	ID  string
	Yes bool

	Client *app.Service
	Engine *engine.Engine

	In  io.Reader
	Out io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	u, err := n.Client.Owner()
	if err != nil {
		return err
	}

	if _, err := engine.FirstSnapshot(ctx, n.Engine, u.UID); err != nil {
		return err
	}
	t, ok := n.Engine.Task(n.ID)
	if !ok {
		return fmt.Errorf("no task with id %q", n.ID)
	}

	gate := &confirm.Gate{}
	gate.Request(confirm.Action{
		Kind:   confirm.KindDeleteTask,
		TaskID: t.ID,
		Do: func(ctx context.Context) error {
			return n.Client.Delete(ctx, t.ID)
		},
	})

	if !n.Yes && !n.prompt(fmt.Sprintf("delete %q? [y/N] ", t.Text)) {
		gate.Cancel()
		fmt.Fprintln(n.out(), "cancelled")
		return nil
	}
	if err := gate.Confirm(ctx); err != nil {
		return err
	}

	tasks, err := engine.FirstSnapshot(ctx, n.Engine, u.UID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true}
	pp.TitleWithCount("tasks", len(tasks))
	pp.Tasks(tasks...)
	return nil
}

func (n *Delete) prompt(msg string) bool {
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

func (n *Delete) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return os.Stdout
}
