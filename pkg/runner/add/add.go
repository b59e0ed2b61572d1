package add

import (
	"context"
	"time"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/engine"
	"tableflip.dev/tick/pkg/printers"
)

type Add struct {
	Text string
	Due  *time.Time

	Client *app.Service
	Engine *engine.Engine
}

func (n *Add) Do(ctx context.Context) error {
	created, err := n.Client.Add(ctx, n.Text, n.Due)
	if err != nil {
		return err
	}

	u, err := n.Client.Owner()
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	tasks, err := engine.FirstSnapshot(ctx, n.Engine, u.UID)
	if err != nil {
		// The add itself succeeded; show what we know.
		pp.Title("added")
		pp.Tasks(created)
		return nil
	}

	pp.TitleWithCount("tasks", len(tasks))
	pp.Tasks(tasks...)
	return nil
}
