package toggle

import (
	"context"
	"fmt"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/engine"
	"tableflip.dev/tick/pkg/printers"
)

type Toggle struct {
	ID string

	Client *app.Service
	Engine *engine.Engine
}

func (n *Toggle) Do(ctx context.Context) error {
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

	if err := n.Client.Toggle(ctx, t); err != nil {
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
