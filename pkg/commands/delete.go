package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/del"
)

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task permanently",
		Example: `
tick delete 171dff69f8b99dca
tick delete 171dff69f8b99dca --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := newClient()
			if err != nil {
				return err
			}
			defer done()

			s := del.Delete{
				ID:     args[0],
				Yes:    co.Yes,
				Client: c.svc,
				Engine: c.eng,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddYesArg(cmd, co)

	topLevel.AddCommand(cmd)
}
