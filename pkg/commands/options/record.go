// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/paddock/pkg/diary"
)

// RecordOptions captures the field flags shared by add and edit.
type RecordOptions struct {
	Date     string
	Location string
	First    string
	Second   string
	Third    string
	Grid     []string
	Content  string
	Image    string

	RemoveImage bool
}

// AddRecordArgs wires the record field flags on the provided command.
func AddRecordArgs(cmd *cobra.Command, o *RecordOptions) {
	cmd.Flags().StringVarP(&o.Date, "date", "d", "",
		`Race date, example: --date="2024-03-10". Defaults to today.`)
	cmd.Flags().StringVarP(&o.Location, "location", "l", "",
		"Circuit or venue.")
	cmd.Flags().StringVar(&o.First, "first", "", "Podium P1 label.")
	cmd.Flags().StringVar(&o.Second, "second", "", "Podium P2 label.")
	cmd.Flags().StringVar(&o.Third, "third", "", "Podium P3 label.")
	cmd.Flags().StringArrayVarP(&o.Grid, "grid", "g", nil,
		`Starting-grid slot as position=label, repeatable: -g 1=44 -g 2=16.`)
	cmd.Flags().StringVar(&o.Content, "content", "", "Diary text.")
	cmd.Flags().StringVar(&o.Image, "image", "",
		"Photo reference (path or URI). Stored as-is, bytes untouched.")
}

// AddRemoveImageArg registers the flag that clears a stored photo reference.
func AddRemoveImageArg(cmd *cobra.Command, o *RecordOptions) {
	cmd.Flags().BoolVar(&o.RemoveImage, "remove-image", false,
		"Clear the stored photo reference.")
}

// GridSlots parses the repeated position=label flags.
func (o *RecordOptions) GridSlots() (map[int]string, error) {
	if len(o.Grid) == 0 {
		return nil, nil
	}
	slots := make(map[int]string, len(o.Grid))
	for _, raw := range o.Grid {
		pos, label, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("grid slot %q: want position=label", raw)
		}
		p, err := strconv.Atoi(strings.TrimSpace(pos))
		if err != nil {
			return nil, fmt.Errorf("grid slot %q: %w", raw, err)
		}
		if p < diary.GridMin || p > diary.GridMax {
			return nil, fmt.Errorf("grid slot %q: position out of range %d..%d", raw, diary.GridMin, diary.GridMax)
		}
		slots[p] = strings.TrimSpace(label)
	}
	return slots, nil
}

// ResolveDate normalizes the date flag, defaulting to today and rejecting
// anything that is not a zero-padded YYYY-MM-DD key.
func (o *RecordOptions) ResolveDate() (string, error) {
	if o.Date == "" {
		return diary.Today(), nil
	}
	if _, err := diary.ParseDate(o.Date); err != nil {
		return "", err
	}
	return o.Date, nil
}
