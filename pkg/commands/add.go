package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/paddock/pkg/commands/options"
	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/picker"
	"tableflip.dev/paddock/pkg/runner/add"
	"tableflip.dev/paddock/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	ro := &options.RecordOptions{}
	var title string
	var pickImage bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a race-weekend entry",
		Example: `
paddock add "Bahrain GP" --content "Season opener" --location Sakhir --first 1 -g 1=1 -g 2=16
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			date, err := ro.ResolveDate()
			if err != nil {
				return output.HandleError(err)
			}
			slots, err := ro.GridSlots()
			if err != nil {
				return output.HandleError(err)
			}

			rec := diary.New(date)
			rec.Title = title
			rec.Location = ro.Location
			rec.Podium = diary.Podium{First: ro.First, Second: ro.Second, Third: ro.Third}
			rec.Content = ro.Content
			for pos, label := range slots {
				if err := rec.SetGridSlot(pos, label); err != nil {
					return output.HandleError(err)
				}
			}

			ctx := context.Background()
			uri, picked, err := resolveImage(ctx, ro.Image, pickImage)
			if err != nil {
				return output.HandleError(err)
			}
			if picked {
				rec.Image = uri
			}

			p, err := store.Load(nil)
			if err != nil {
				return err
			}

			s := add.Add{
				Record:      rec,
				ShowID:      output.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(ctx))
		},
	}

	options.AddRecordArgs(cmd, ro)
	cmd.Flags().BoolVar(&pickImage, "pick-image", false,
		"Invoke the configured photo chooser (PADDOCK_IMAGE_PICKER).")
	options.AddOutputArg(cmd, output)
	options.AddShowIDArg(cmd, output)
	topLevel.AddCommand(cmd)
}

// resolveImage resolves the photo reference through the picker collaborator.
// A cancelled pick reports picked=false so callers leave the record
// untouched.
func resolveImage(ctx context.Context, ref string, pick bool) (uri string, picked bool, err error) {
	var ip picker.ImagePicker
	switch {
	case pick:
		cmd, ok := picker.FromEnv()
		if !ok {
			return "", false, errors.New("no photo chooser configured, set PADDOCK_IMAGE_PICKER")
		}
		ip = cmd
	case ref != "":
		ip = picker.Path{Ref: ref}
	default:
		return "", false, nil
	}

	uri, err = ip.Pick(ctx)
	if err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			return "", false, nil
		}
		return "", false, err
	}
	return uri, true, nil
}
