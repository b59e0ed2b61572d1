package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/auth"
	"tableflip.dev/tick/pkg/engine"
	"tableflip.dev/tick/pkg/store"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tick",
		Short: base.Wrap80("Synchronized task lists on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addKey(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addToggle(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addVersion(topLevel)
}

// client wires a command invocation: config, store, session, service, and
// a sync engine over the store. Callers must call close when done.
type client struct {
	cfg store.Config
	svc *app.Service
	eng *engine.Engine
}

func newClient() (*client, func(), error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	p, err := auth.Load(cfg)
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	c := &client{
		cfg: cfg,
		svc: &app.Service{Store: s, Auth: p},
		eng: engine.New(s),
	}
	return c, func() { _ = s.Close() }, nil
}
