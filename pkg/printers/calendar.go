package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/glyph"
)

// Calendar prints the month containing on, flagging dates from the marker
// set: entry dates in the accent color, the selected date inverted, today
// bold, with a glyph legend underneath.
func (pp *PrettyPrint) Calendar(on time.Time, markers map[string]diary.Marker) {
	first := time.Date(on.Year(), on.Month(), 1, 0, 0, 0, 0, on.Location())
	today := diary.FormatDate(time.Now())

	head := color.New(color.Bold)
	weekdays := color.New(color.Faint)
	entry := color.New(color.FgHiRed)
	selected := color.New(color.ReverseVideo)
	plain := color.New()

	_, _ = head.Printf("%d\n", first.Year())
	_, _ = head.Printf("%s\n", first.Month())
	_, _ = weekdays.Println("Su Mo Tu We Th Fr Sa")

	daysInMonth := first.AddDate(0, 1, -1).Day()
	col := int(first.Weekday())
	for i := 0; i < col; i++ {
		fmt.Print("   ")
	}

	for day := 1; day <= daysInMonth; day++ {
		date := diary.FormatDate(time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location()))
		m := markers[date]

		c := plain
		switch {
		case m.Selected:
			c = selected
		case m.HasEntries:
			c = entry
		case date == today:
			c = color.New(color.Bold)
		}
		_, _ = c.Printf("%2d", day)
		fmt.Print(" ")

		col++
		if col == 7 {
			col = 0
			fmt.Println("")
		}
	}
	if col != 0 {
		fmt.Println("")
	}

	_, _ = entry.Print(glyph.Entry)
	_, _ = weekdays.Printf(" %s  ", glyph.Entry.Meaning)
	_, _ = selected.Print(glyph.Selected)
	_, _ = weekdays.Printf(" %s  ", glyph.Selected.Meaning)
	_, _ = head.Print(glyph.Today)
	_, _ = weekdays.Printf(" %s\n", glyph.Today.Meaning)
}
