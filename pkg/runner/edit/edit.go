package edit

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/edit"
	"tableflip.dev/tick/pkg/engine"
	"tableflip.dev/tick/pkg/printers"
)

type Edit struct {
	ID       string
	Text     string
	Due      *time.Time
	ClearDue bool

	Client *app.Service
	Engine *engine.Engine
}

func (n *Edit) Do(ctx context.Context) error {
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

	s := &edit.Session{}
	s.Start(t)
	if n.Text != "" {
		s.SetText(n.Text)
	}
	switch {
	case n.ClearDue:
		s.SetDue(nil)
	case n.Due != nil:
		s.SetDue(n.Due)
	}
	if err := s.Save(ctx, n.Client); err != nil {
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
