package options

import (
	"github.com/spf13/cobra"
)

// LoginOptions
type LoginOptions struct {
	Email string
	UID   string
}

func AddLoginArgs(cmd *cobra.Command, o *LoginOptions) {
	cmd.Flags().StringVar(&o.Email, "email", "",
		"The email address to sign in with.")
	cmd.Flags().StringVar(&o.UID, "uid", "",
		"Override the user id. Defaults to the email address.")
}
