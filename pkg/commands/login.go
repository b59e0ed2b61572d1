package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/login"
	"tableflip.dev/tick/pkg/store"
)

func addLogin(topLevel *cobra.Command) {
	lo := &options.LoginOptions{}

	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in and start a local session",
		Example: `
tick login pat@example.com
tick login --email=pat@example.com --uid=abc123
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				lo.Email = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s := login.Login{
				Email:  lo.Email,
				UID:    lo.UID,
				Config: cfg,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddLoginArgs(cmd, lo)

	topLevel.AddCommand(cmd)
}
