package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/get"
	"tableflip.dev/tick/pkg/view"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:       "get [filter]",
		Short:     "Get the task list",
		ValidArgs: []string{"all", "pending", "completed"},
		Example: `
tick get
tick get pending
tick get --filter=completed --show-id
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				fo.Filter = args[0]
			}
			_, err := view.ParseFilter(fo.Filter)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := view.ParseFilter(fo.Filter)
			if err != nil {
				return err
			}
			c, done, err := newClient()
			if err != nil {
				return err
			}
			defer done()

			s := get.Get{
				ShowID: io.ShowID,
				Filter: filter,
				Client: c.svc,
				Engine: c.eng,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
