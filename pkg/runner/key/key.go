// Package key provides CLI helpers to display the marker legend.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/paddock/pkg/glyph"
)

// Key prints the legend for the calendar markers and record-card symbols.
type Key struct{}

// Do renders the legend to stdout.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, glyph.Bold(glyph.Underline("\nMarkers")))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Symbol"), glyph.Bold("Meaning"))
	for _, g := range glyph.DefaultGlyphs() {
		tbl.AddRow(g.Symbol, g.Meaning)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
	return nil
}
