package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/tick/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the live task dashboard",
		Example: `
tick ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := newClient()
			if err != nil {
				return err
			}
			defer done()

			return teaui.Run(c.svc, c.eng)
		},
	}

	topLevel.AddCommand(cmd)
}
