package commands

import (
	"context"

	"github.com/spf13/cobra"

	teaui "tableflip.dev/paddock/pkg/runner/tea"
	"tableflip.dev/paddock/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the calendar browser",
		Example: `
paddock ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			i := teaui.UI{Persistence: p}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
