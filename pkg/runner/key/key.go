// Package key provides CLI helpers to display the task marker legend.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tick/pkg/glyph"
)

// Key prints a legend describing the markers shown next to task rows.
type Key struct{}

func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, glyph.Legend())
	fmt.Println("")
	return nil
}

func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Marker"), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		tbl.AddRow(v.Symbol, v.Meaning)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
