package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/fatih/color"

	"tableflip.dev/paddock/pkg/app"
	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/printers"
	"tableflip.dev/paddock/pkg/store"
)

type Get struct {
	Date   string
	All    bool
	Month  bool
	JSON   bool
	ShowID bool

	Persistence store.Persistence
}

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	svc := &app.Service{Persistence: n.Persistence}
	pp := printers.PrettyPrint{ShowID: n.ShowID}

	if n.All {
		records, err := svc.Records(ctx)
		if err != nil {
			return err
		}
		if n.JSON {
			return printJSON(records)
		}
		fmt.Println("")
		for _, date := range distinctDates(records) {
			day := diary.ForDate(records, date)
			pp.TitleWithCount(date, len(day))
			pp.Records(day...)
		}
		return nil
	}

	if n.Month {
		on, err := diary.ParseDate(n.Date)
		if err != nil {
			return err
		}
		markers, err := svc.Markers(ctx, n.Date)
		if err != nil {
			return err
		}
		fmt.Println("")
		pp.Calendar(on, markers)
		pp.NewLine()
	}

	day, err := svc.ForDate(ctx, n.Date)
	if err != nil {
		return err
	}
	if n.JSON {
		return printJSON(day)
	}
	if !n.Month {
		fmt.Println("")
	}
	pp.TitleWithCount(n.Date, len(day))
	pp.Records(day...)
	return nil
}

func printJSON(records []diary.Record) error {
	if records == nil {
		records = []diary.Record{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}

// distinctDates lists the dates present in the collection, ascending.
func distinctDates(records []diary.Record) []string {
	seen := make(map[string]bool, len(records))
	dates := make([]string, 0, len(records))
	for _, r := range records {
		if !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
	}
	// Date keys compare lexicographically in chronological order.
	sort.Strings(dates)
	return dates
}
