package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	do := &options.DueOptions{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a pending task",
		Example: `
tick add water the plants
tick add file taxes --due="2026-04-15"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := do.GetDue()
			if err != nil {
				return err
			}
			c, done, err := newClient()
			if err != nil {
				return err
			}
			defer done()

			s := add.Add{
				Text:   strings.Join(args, " "),
				Due:    due,
				Client: c.svc,
				Engine: c.eng,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddDueArgs(cmd, do)

	topLevel.AddCommand(cmd)
}
