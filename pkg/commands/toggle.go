package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/runner/toggle"
)

func addToggle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between pending and completed",
		Example: `
tick toggle 171dff69f8b99dca
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := newClient()
			if err != nil {
				return err
			}
			defer done()

			s := toggle.Toggle{
				ID:     args[0],
				Client: c.svc,
				Engine: c.eng,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
