package teaui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/paddock/pkg/app"
	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/glyph"
	"tableflip.dev/paddock/pkg/runner/tea/internal/calendar"
	"tableflip.dev/paddock/pkg/runner/tea/internal/theme"
	"tableflip.dev/paddock/pkg/store"
)

// Model states
type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeConfirm
)

type focusArea int

const (
	focusCalendar focusArea = iota
	focusRecords
)

const (
	browseHelp  = "BROWSE: h/l day, j/k week, [/] month, t today, tab entries, a add, r refresh, q quit"
	recordsHelp = "ENTRIES: j/k move, enter edit, d delete, tab calendar, a add, q quit"
	editHelp    = "EDIT: tab/enter next field, ctrl+s save, esc cancel"
)

// record item for the right list
type recordItem struct{ r diary.Record }

func (it recordItem) Title() string {
	if it.r.Location == "" {
		return it.r.Title
	}
	return fmt.Sprintf("%s  %s %s", it.r.Title, glyph.Pin, it.r.Location)
}

func (it recordItem) Description() string {
	desc := fmt.Sprintf("%s 1st: %s | 2nd: %s | 3rd: %s",
		glyph.Trophy, orDash(it.r.Podium.First), orDash(it.r.Podium.Second), orDash(it.r.Podium.Third))
	if it.r.Image != "" {
		desc += "  " + glyph.Photo.String()
	}
	return desc
}

func (it recordItem) FilterValue() string { return it.r.Title }

func orDash(label string) string {
	if label == "" {
		return "-"
	}
	return label
}

// messages
type errMsg struct{ err error }
type recordsLoadedMsg struct{ records []diary.Record }
type storeChangedMsg struct{}

// Model contains the browser state. The record collection is reloaded in
// full on every refresh; the calendar markers and the visible list are
// derived from it locally.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	events <-chan store.Event

	mode  mode
	focus focusArea

	selected time.Time
	records  []diary.Record

	recList list.Model

	form    editForm
	editing *diary.Record

	confirm *diary.Record

	status string

	termWidth  int
	termHeight int

	// now is the clock used for the today marker; tests pin it.
	now func() time.Time
}

// New creates a browser model backed by the Service.
func New(svc *app.Service) Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 56, 20)
	l.Title = "Entries"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	m := Model{
		svc:     svc,
		ctx:     context.Background(),
		mode:    modeBrowse,
		focus:   focusCalendar,
		recList: l,
		form:    newEditForm(),
		status:  browseHelp,
		now:     time.Now,
	}
	m.selected = truncateDay(m.now())
	return m
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (m *Model) selectedKey() string {
	return diary.FormatDate(m.selected)
}

// Init loads initial data and arms the change watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadRecords(), m.nextEvent())
}

func (m *Model) loadRecords() tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		records, err := svc.Records(ctx)
		if err != nil {
			return errMsg{err}
		}
		return recordsLoadedMsg{records}
	}
}

// nextEvent re-arms the store watcher; each delivery triggers a full reload.
func (m *Model) nextEvent() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// syncList rebuilds the visible list from the loaded collection and the
// selected date.
func (m *Model) syncList() {
	day := diary.ForDate(m.records, m.selectedKey())
	items := make([]list.Item, 0, len(day))
	for _, r := range day {
		items = append(items, recordItem{r: r})
	}
	m.recList.SetItems(items)
	m.recList.Title = "Entries · " + m.selectedKey()
	if len(items) == 0 && m.focus == focusRecords {
		m.focus = focusCalendar
		m.status = browseHelp
	}
}

func (m *Model) currentRecord() *diary.Record {
	if len(m.recList.Items()) == 0 {
		return nil
	}
	sel := m.recList.SelectedItem()
	if sel == nil {
		return nil
	}
	it, ok := sel.(recordItem)
	if !ok {
		return nil
	}
	r := it.r
	return &r
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case recordsLoadedMsg:
		m.records = msg.records
		m.syncList()
	case storeChangedMsg:
		cmds = append(cmds, m.loadRecords(), m.nextEvent())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeConfirm:
			m.updateConfirm(msg, &cmds)
		case modeEdit:
			cmds = append(cmds, m.updateEdit(msg))
		case modeBrowse:
			m.updateBrowse(msg, &cmds)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateBrowse(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		*cmds = append(*cmds, tea.Quit)
		return
	case "r":
		*cmds = append(*cmds, m.loadRecords())
		m.status = "Refreshed"
		return
	case "a", "o":
		m.startCreate(cmds)
		return
	case "tab":
		if m.focus == focusCalendar && len(m.recList.Items()) > 0 {
			m.focus = focusRecords
			m.status = recordsHelp
		} else {
			m.focus = focusCalendar
			m.status = browseHelp
		}
		return
	}

	if m.focus == focusCalendar {
		switch msg.String() {
		case "h", "left":
			m.moveSelection(0, -1)
		case "l", "right":
			m.moveSelection(0, 1)
		case "k", "up":
			m.moveSelection(0, -7)
		case "j", "down":
			m.moveSelection(0, 7)
		case "[":
			m.moveSelection(-1, 0)
		case "]":
			m.moveSelection(1, 0)
		case "t":
			m.selected = truncateDay(m.now())
			m.syncList()
		case "enter":
			if len(m.recList.Items()) > 0 {
				m.focus = focusRecords
				m.status = recordsHelp
			}
		}
		return
	}

	switch msg.String() {
	case "esc":
		m.focus = focusCalendar
		m.status = browseHelp
	case "j", "down":
		m.recList.CursorDown()
	case "k", "up":
		m.recList.CursorUp()
	case "enter", "i":
		if r := m.currentRecord(); r != nil {
			m.startEdit(*r, cmds)
		}
	case "d":
		if r := m.currentRecord(); r != nil {
			m.confirm = r
			m.mode = modeConfirm
			m.status = fmt.Sprintf("Delete %q? y to confirm, any other key cancels", r.Title)
		}
	}
}

func (m *Model) moveSelection(months, days int) {
	m.selected = m.selected.AddDate(0, months, days)
	m.syncList()
}

func (m *Model) updateConfirm(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	target := m.confirm
	m.confirm = nil
	m.mode = modeBrowse

	if msg.String() != "y" || target == nil {
		m.status = "Delete cancelled"
		return
	}
	if err := m.svc.Delete(m.ctx, target.ID); err != nil {
		// The stored collection is untouched on failure; the visible list is
		// only updated from a successful reload.
		*cmds = append(*cmds, func() tea.Msg { return errMsg{err} })
		return
	}
	m.status = fmt.Sprintf("Deleted %q", target.Title)
	*cmds = append(*cmds, m.loadRecords())
}

func (m *Model) startCreate(cmds *[]tea.Cmd) {
	m.editing = nil
	m.form.reset(diary.New(m.selectedKey()))
	m.mode = modeEdit
	m.status = editHelp
	*cmds = append(*cmds, m.form.focusCurrent())
}

func (m *Model) startEdit(r diary.Record, cmds *[]tea.Cmd) {
	rec := r.Clone()
	m.editing = &rec
	// Entering the editor re-initializes every field from the record; stale
	// state from a previous session never leaks through.
	m.form.reset(rec)
	m.mode = modeEdit
	m.status = editHelp
	*cmds = append(*cmds, m.form.focusCurrent())
}

func (m *Model) updateEdit(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		if m.editing == nil {
			m.status = "Add cancelled"
		} else {
			m.status = "Edit cancelled"
		}
		m.editing = nil
		return nil
	case "ctrl+s":
		return m.saveForm()
	case "enter":
		if m.form.onLastField() {
			return m.saveForm()
		}
		return m.form.next()
	case "tab", "down":
		return m.form.next()
	case "shift+tab", "up":
		return m.form.prev()
	default:
		return m.form.update(msg)
	}
}

// saveForm builds the record from the form and upserts it. Failures keep the
// form state so the user can retry.
func (m *Model) saveForm() tea.Cmd {
	base := diary.Record{}
	if m.editing != nil {
		base = *m.editing
	}
	rec, err := m.form.record(base)
	if err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}

	if m.editing != nil {
		_, err = m.svc.Update(m.ctx, rec)
	} else {
		rec, err = m.svc.Create(m.ctx, rec)
	}
	if err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}

	if saved, perr := diary.ParseDate(rec.Date); perr == nil {
		m.selected = saved
	}
	if m.editing != nil {
		m.status = fmt.Sprintf("Updated %q", rec.Title)
	} else {
		m.status = fmt.Sprintf("Saved %q", rec.Title)
	}
	m.editing = nil
	m.mode = modeBrowse
	return m.loadRecords()
}

// View renders the calendar pane, the entry list, and the status line, or
// the editor form while editing.
func (m Model) View() string {
	if m.mode == modeEdit {
		title := "New entry"
		if m.editing != nil {
			title = fmt.Sprintf("Edit entry %d", m.editing.ID)
		}
		body := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + m.form.view()
		return body + "\n\n" + theme.Muted().Render(m.status)
	}

	cal := m.calendarView()
	right := m.recList.View()
	gap := lipgloss.NewStyle().Padding(0, 1).Render(" ")
	body := lipgloss.JoinHorizontal(lipgloss.Top, cal, gap, right)

	return body + "\n\n" + theme.Muted().Render(m.status)
}

func (m Model) calendarView() string {
	monthStart := time.Date(m.selected.Year(), m.selected.Month(), 1, 0, 0, 0, 0, m.selected.Location())
	markers := diary.Markers(m.records, m.selectedKey())
	today := diary.FormatDate(m.now())

	days := make([]calendar.Day, 0, calendar.DaysIn(monthStart))
	for day := 1; day <= calendar.DaysIn(monthStart); day++ {
		key := diary.FormatDate(time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, monthStart.Location()))
		mk := markers[key]
		days = append(days, calendar.Day{
			Day:        day,
			HasEntry:   mk.HasEntries,
			IsSelected: mk.Selected,
			IsToday:    key == today,
		})
	}

	return calendar.Render(monthStart, days, calendarOptions())
}

func calendarOptions() calendar.Options {
	return calendar.Options{
		TitleStyle:    lipgloss.NewStyle().Bold(true),
		HeaderStyle:   theme.Faded(0.8),
		EmptyStyle:    lipgloss.NewStyle(),
		EntryStyle:    theme.Accent(),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Reverse(true),
		ShowTitle:     true,
		ShowHeader:    true,
	}
}

// applySizes recalculates pane sizes based on the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	// The calendar pane is fixed width; the list takes the rest.
	right := m.termWidth - 24 - 4
	if right < 20 {
		right = 20
	}
	height := m.termHeight - 4
	if height < 5 {
		height = 5
	}
	m.recList.SetSize(right, height)
}

// Run starts the browser program.
func Run(ctx context.Context, svc *app.Service) error {
	m := New(svc)
	m.ctx = ctx
	if ch, err := svc.Watch(ctx); err == nil {
		m.events = ch
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
