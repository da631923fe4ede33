package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/paddock/pkg/app"
	"tableflip.dev/paddock/pkg/commands/options"
	"tableflip.dev/paddock/pkg/runner/remove"
	"tableflip.dev/paddock/pkg/store"
)

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	var id int64

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry by id",
		Example: `
paddock delete 1700000000000
paddock delete 1700000000000 --yes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires exactly one record id")
			}
			var err error
			id, err = strconv.ParseInt(args[0], 10, 64)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}

			if !co.Yes {
				svc := &app.Service{Persistence: p}
				rec, err := svc.Get(context.Background(), id)
				if err != nil {
					return output.HandleError(err)
				}
				prompt := promptui.Prompt{
					Label:     fmt.Sprintf("Delete %q (%s)", rec.Title, rec.Date),
					IsConfirm: true,
					Stdin:     io.NopCloser(cmd.InOrStdin()),
				}
				if _, err := prompt.Run(); err != nil {
					// Declined or dismissed; nothing deleted.
					return nil
				}
			}

			s := remove.Remove{
				ID:          id,
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddYesArg(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
