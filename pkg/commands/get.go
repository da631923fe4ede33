package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/paddock/pkg/commands/options"
	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/runner/get"
	"tableflip.dev/paddock/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	var all bool
	var month bool
	var date string

	cmd := &cobra.Command{
		Use:   "get [date]",
		Short: "Get entries for a date",
		Example: `
paddock get
paddock get 2024-03-10
paddock get --month
paddock get --all --json
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			switch len(args) {
			case 0:
				date = diary.Today()
				return nil
			case 1:
				if _, err := diary.ParseDate(args[0]); err != nil {
					return err
				}
				date = args[0]
				return nil
			default:
				return errors.New("at most one date")
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := get.Get{
				Date:        date,
				All:         all,
				Month:       month,
				JSON:        output.JSON,
				ShowID:      output.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "All entries, grouped by date.")
	cmd.Flags().BoolVarP(&month, "month", "m", false, "Print the month calendar with markers.")
	options.AddOutputArg(cmd, output)
	options.AddShowIDArg(cmd, output)
	topLevel.AddCommand(cmd)
}
