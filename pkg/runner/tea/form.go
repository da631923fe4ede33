package teaui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/runner/tea/internal/theme"
)

const (
	fieldTitle = iota
	fieldDate
	fieldLocation
	fieldFirst
	fieldSecond
	fieldThird
	fieldGrid
	fieldContent
	fieldImage
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Date",
	"Location",
	"1st",
	"2nd",
	"3rd",
	"Grid",
	"Notes",
	"Image",
}

// editForm holds one input per record field. The grid is edited as
// space-separated position=label pairs.
type editForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newEditForm() editForm {
	f := editForm{}
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Prompt = ""
		ti.Styles.Cursor.Color = lipgloss.Color("218")
		ti.Styles.Cursor.Shape = tea.CursorUnderline
		f.inputs[i] = ti
	}
	f.inputs[fieldDate].Placeholder = "2026-08-30"
	f.inputs[fieldGrid].Placeholder = "1=44 2=16"
	f.inputs[fieldContent].CharLimit = 0
	f.inputs[fieldImage].Placeholder = "path or URI"
	return f
}

// reset re-initializes every field from the record and focuses the title.
func (f *editForm) reset(r diary.Record) {
	f.inputs[fieldTitle].SetValue(r.Title)
	f.inputs[fieldDate].SetValue(r.Date)
	f.inputs[fieldLocation].SetValue(r.Location)
	f.inputs[fieldFirst].SetValue(r.Podium.First)
	f.inputs[fieldSecond].SetValue(r.Podium.Second)
	f.inputs[fieldThird].SetValue(r.Podium.Third)
	f.inputs[fieldGrid].SetValue(gridText(r.Grid))
	f.inputs[fieldContent].SetValue(r.Content)
	f.inputs[fieldImage].SetValue(r.Image)
	f.focus = fieldTitle
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *editForm) focusCurrent() tea.Cmd {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return textinput.Blink
}

func (f *editForm) next() tea.Cmd {
	f.focus = (f.focus + 1) % fieldCount
	return f.focusCurrent()
}

func (f *editForm) prev() tea.Cmd {
	f.focus = (f.focus + fieldCount - 1) % fieldCount
	return f.focusCurrent()
}

func (f *editForm) onLastField() bool { return f.focus == fieldCount-1 }

func (f *editForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// record builds a record from the form on top of base. Base carries the
// identity for an existing record; a zero base yields a new one.
func (f *editForm) record(base diary.Record) (diary.Record, error) {
	r := base
	r.Title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	r.Location = strings.TrimSpace(f.inputs[fieldLocation].Value())
	r.Podium.First = strings.TrimSpace(f.inputs[fieldFirst].Value())
	r.Podium.Second = strings.TrimSpace(f.inputs[fieldSecond].Value())
	r.Podium.Third = strings.TrimSpace(f.inputs[fieldThird].Value())
	r.Content = f.inputs[fieldContent].Value()
	r.Image = strings.TrimSpace(f.inputs[fieldImage].Value())

	// A record without a date key is unreachable from the calendar, so a
	// cleared date field is an error rather than a silent save.
	date := strings.TrimSpace(f.inputs[fieldDate].Value())
	if date == "" {
		return diary.Record{}, fmt.Errorf("date is required")
	}
	if _, err := diary.ParseDate(date); err != nil {
		return diary.Record{}, err
	}
	r.Date = date

	grid, err := parseGrid(f.inputs[fieldGrid].Value())
	if err != nil {
		return diary.Record{}, err
	}
	r.Grid = grid

	return r, nil
}

func (f *editForm) view() string {
	var b strings.Builder
	label := theme.Muted()
	active := theme.Accent()
	for i := range f.inputs {
		name := fieldLabels[i]
		if i == f.focus {
			b.WriteString(active.Render(fmt.Sprintf("%9s ", name)))
		} else {
			b.WriteString(label.Render(fmt.Sprintf("%9s ", name)))
		}
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}

// gridText renders a grid map as sorted position=label pairs.
func gridText(grid map[int]string) string {
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
		parts = append(parts, fmt.Sprintf("%d=%s", pos, grid[pos]))
	}
	return strings.Join(parts, " ")
}

// parseGrid parses space-separated position=label pairs into a grid map.
func parseGrid(text string) (map[int]string, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}
	grid := map[int]string{}
	for _, field := range fields {
		pos, label, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("grid entry %q: want position=label", field)
		}
		n, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("grid entry %q: %w", field, err)
		}
		if n < diary.GridMin || n > diary.GridMax {
			return nil, fmt.Errorf("grid position %d out of range %d..%d", n, diary.GridMin, diary.GridMax)
		}
		if strings.TrimSpace(label) == "" {
			continue
		}
		grid[n] = strings.TrimSpace(label)
	}
	if len(grid) == 0 {
		return nil, nil
	}
	return grid, nil
}
