package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/logout"
)

func addLogout(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the local session",
		Example: `
tick logout
tick logout --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := newClient()
			if err != nil {
				return err
			}
			defer done()

			s := logout.Logout{
				Yes:    co.Yes,
				Client: c.svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddYesArg(cmd, co)

	topLevel.AddCommand(cmd)
}
