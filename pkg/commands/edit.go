package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	do := &options.DueOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id> [text]",
		Short: "Replace a task's text and due date",
		Example: `
tick edit 171dff69f8b99dca water the plants daily
tick edit 171dff69f8b99dca --due="2026-03-01 15:04"
tick edit 171dff69f8b99dca --clear-due
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

			s := edit.Edit{
				ID:       args[0],
				Text:     strings.Join(args[1:], " "),
				Due:      due,
				ClearDue: do.ClearDue,
				Client:   c.svc,
				Engine:   c.eng,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddDueArgs(cmd, do)
	options.AddClearDueArg(cmd, do)

	topLevel.AddCommand(cmd)
}
