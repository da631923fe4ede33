package commands

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/paddock/pkg/commands/options"
	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/runner/edit"
	"tableflip.dev/paddock/pkg/store"
)

func addEdit(topLevel *cobra.Command) {
	ro := &options.RecordOptions{}
	var title string
	var id int64
	var pickImage bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry by id",
		Example: `
paddock edit 1700000000000 --location Sakhir -g 3=55
paddock edit 1700000000000 --title "Bahrain GP (sprint)" --remove-image
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

			slots, err := ro.GridSlots()
			if err != nil {
				return output.HandleError(err)
			}

			s := edit.Edit{
				ID:          id,
				GridSlots:   slots,
				RemoveImage: ro.RemoveImage,
				ShowID:      output.ShowID,
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				s.Title = &title
			}
			if flags.Changed("date") {
				if _, err := diary.ParseDate(ro.Date); err != nil {
					return output.HandleError(err)
				}
				s.Date = &ro.Date
			}
			if flags.Changed("location") {
				s.Location = &ro.Location
			}
			if flags.Changed("first") {
				s.First = &ro.First
			}
			if flags.Changed("second") {
				s.Second = &ro.Second
			}
			if flags.Changed("third") {
				s.Third = &ro.Third
			}
			if flags.Changed("content") {
				s.Content = &ro.Content
			}

			ctx := context.Background()
			if pickImage || flags.Changed("image") {
				uri, picked, err := resolveImage(ctx, ro.Image, pickImage)
				if err != nil {
					return output.HandleError(err)
				}
				if picked {
					s.Image = &uri
				}
			}

			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s.Persistence = p
			return output.HandleError(s.Do(ctx))
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Entry title.")
	options.AddRecordArgs(cmd, ro)
	options.AddRemoveImageArg(cmd, ro)
	cmd.Flags().BoolVar(&pickImage, "pick-image", false,
		"Invoke the configured photo chooser (PADDOCK_IMAGE_PICKER).")
	options.AddOutputArg(cmd, output)
	options.AddShowIDArg(cmd, output)
	topLevel.AddCommand(cmd)
}
