package printers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/glyph"
)

const contentWidth = 72

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("1700000000000  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

// Records prints one card per record: header line, podium and grid summary,
// wrapped content, and the photo reference when present.
func (pp *PrettyPrint) Records(records ...diary.Record) {
	if len(records) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	for _, r := range records {
		pp.record(r)
	}
}

func (pp *PrettyPrint) record(r diary.Record) {
	head := color.New(color.Bold)
	faint := color.New(color.Faint)
	id := color.New(color.FgHiYellow, color.Italic, color.Faint)

	if pp.ShowID {
		_, _ = id.Printf("%-15d", r.ID)
	}
	_, _ = head.Print(r.Title)
	if r.Location != "" {
		_, _ = faint.Printf("  %s %s", glyph.Pin, r.Location)
	}
	_, _ = faint.Printf("  %s\n", r.Date)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Trophy.String(),
		podiumLabel("1st", r.Podium.First),
		podiumLabel("2nd", r.Podium.Second),
		podiumLabel("3rd", r.Podium.Third))
	if row := gridRow(r.Grid); row != "" {
		tbl.AddRow("", row)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)

	for _, line := range strings.Split(wordwrap.String(r.Content, contentWidth), "\n") {
		fmt.Printf("  %s\n", line)
	}
	if r.Image != "" {
		_, _ = faint.Printf("  %s %s\n", glyph.Photo, r.Image)
	}
	fmt.Println("")
}

func podiumLabel(place, label string) string {
	if label == "" {
		label = "-"
	}
	return fmt.Sprintf("%s: %s", place, label)
}

// gridRow renders the sparse grid mapping in position order.
func gridRow(grid map[int]string) string {
	if len(grid) == 0 {
		return ""
	}
	positions := make([]int, 0, len(grid))
	for pos := range grid {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	parts := make([]string, 0, len(positions))
	for _, pos := range positions {
		parts = append(parts, fmt.Sprintf("P%d %s", pos, grid[pos]))
	}
	return strings.Join(parts, " · ")
}
