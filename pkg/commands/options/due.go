package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/task"
	"tableflip.dev/tick/pkg/timeutil"
)

// DueOptions
type DueOptions struct {
	DueString string
	ClearDue  bool
}

func AddDueArgs(cmd *cobra.Command, o *DueOptions) {
	cmd.Flags().StringVar(&o.DueString, "due", "",
		`Specify a due date, absolute or relative, examples: --due="2026-03-01 15:04", --due=2d.`)
}

func AddClearDueArg(cmd *cobra.Command, o *DueOptions) {
	cmd.Flags().BoolVar(&o.ClearDue, "clear-due", false,
		"Remove the existing due date.")
}

func (o *DueOptions) GetDue() (*time.Time, error) {
	if o.DueString == "" {
		return nil, nil
	}
	if offset, err := timeutil.ParseOffset(o.DueString); err == nil {
		due := time.Now().Add(offset).Truncate(time.Second)
		return &due, nil
	}
	return task.ParseDue(o.DueString)
}
