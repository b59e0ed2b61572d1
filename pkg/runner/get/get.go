package get

import (
	"context"
	"fmt"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/engine"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/view"
)

type Get struct {
	ShowID bool
	Filter view.Filter

	Client *app.Service
	Engine *engine.Engine
}

func (n *Get) Do(ctx context.Context) error {
	u, err := n.Client.Owner()
	if err != nil {
		return err
	}

	tasks, err := engine.FirstSnapshot(ctx, n.Engine, u.UID)
	if err != nil {
		return err
	}
	tasks = view.Project(tasks, n.Filter)

	fmt.Println("")
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title(fmt.Sprintf("Welcome, %s", u.Email))
	pp.NewLine()
	switch n.Filter {
	case view.FilterAll, "":
		pp.TitleWithCount("tasks", len(tasks))
	default:
		pp.TitleWithCount(n.Filter.String(), len(tasks))
	}
	pp.Tasks(tasks...)

	return nil
}
