package teaui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/paddock/pkg/app"
	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/store"
)

func fixedNow() time.Time {
	return time.Date(2026, time.May, 24, 10, 0, 0, 0, time.UTC)
}

func newTestModel(t *testing.T, records ...diary.Record) (Model, *fakePersistence) {
	t.Helper()
	fp := &fakePersistence{records: records}
	svc := &app.Service{Persistence: fp}
	m := New(svc)
	m.now = fixedNow
	m.selected = truncateDay(fixedNow())
	return m, fp
}

func loadInto(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.loadRecords()
	if cmd == nil {
		t.Fatalf("expected load command")
	}
	msg := cmd()
	loaded, ok := msg.(recordsLoadedMsg)
	if !ok {
		t.Fatalf("expected recordsLoadedMsg, got %T", msg)
	}
	model, _ := m.Update(loaded)
	return model.(Model)
}

func press(m Model, text string) Model {
	var msg tea.KeyPressMsg
	switch text {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		msg = tea.KeyPressMsg{Code: tea.KeyTab}
	default:
		msg = tea.KeyPressMsg{Text: text, Code: rune(text[0])}
	}
	model, _ := m.Update(msg)
	return model.(Model)
}

func TestLoadFiltersListToSelectedDate(t *testing.T) {
	m, _ := newTestModel(t,
		newRecord(1, "Monaco GP", "2026-05-24"),
		newRecord(2, "Quali notes", "2026-05-24"),
		newRecord(3, "Imola GP", "2026-05-17"),
	)
	m = loadInto(t, m)

	if got := len(m.recList.Items()); got != 2 {
		t.Fatalf("expected 2 entries for selected day, got %d", got)
	}
	if m.recList.Title != "Entries · 2026-05-24" {
		t.Fatalf("unexpected list title %q", m.recList.Title)
	}
}

func TestCalendarKeysMoveSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = loadInto(t, m)

	m = press(m, "l")
	if m.selectedKey() != "2026-05-25" {
		t.Fatalf("expected next day, got %s", m.selectedKey())
	}
	m = press(m, "j")
	if m.selectedKey() != "2026-06-01" {
		t.Fatalf("expected next week, got %s", m.selectedKey())
	}
	m = press(m, "[")
	if m.selectedKey() != "2026-05-01" {
		t.Fatalf("expected previous month, got %s", m.selectedKey())
	}
	m = press(m, "t")
	if m.selectedKey() != "2026-05-24" {
		t.Fatalf("expected today, got %s", m.selectedKey())
	}
}

func TestMovingSelectionRefiltersList(t *testing.T) {
	m, _ := newTestModel(t,
		newRecord(1, "Monaco GP", "2026-05-24"),
		newRecord(2, "Next day debrief", "2026-05-25"),
	)
	m = loadInto(t, m)

	if got := len(m.recList.Items()); got != 1 {
		t.Fatalf("expected 1 entry before move, got %d", got)
	}
	m = press(m, "l")
	items := m.recList.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 entry after move, got %d", len(items))
	}
	if items[0].(recordItem).r.Title != "Next day debrief" {
		t.Fatalf("unexpected entry %q", items[0].(recordItem).r.Title)
	}
}

func TestTabTogglesFocusOnlyWithEntries(t *testing.T) {
	m, _ := newTestModel(t, newRecord(1, "Monaco GP", "2026-05-24"))
	m = loadInto(t, m)

	m = press(m, "tab")
	if m.focus != focusRecords {
		t.Fatalf("expected focus on entries")
	}
	m = press(m, "tab")
	if m.focus != focusCalendar {
		t.Fatalf("expected focus back on calendar")
	}

	m = press(m, "l") // empty day
	m = press(m, "tab")
	if m.focus != focusCalendar {
		t.Fatalf("expected focus to stay on calendar for empty day")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, fp := newTestModel(t, newRecord(1, "Monaco GP", "2026-05-24"))
	m = loadInto(t, m)
	m = press(m, "tab")

	m = press(m, "d")
	if m.mode != modeConfirm {
		t.Fatalf("expected confirm mode after d")
	}
	m = press(m, "n")
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after cancel")
	}
	if got := len(fp.snapshot()); got != 1 {
		t.Fatalf("cancel must not delete, have %d records", got)
	}

	m = press(m, "d")
	m = press(m, "y")
	if got := len(fp.snapshot()); got != 0 {
		t.Fatalf("expected record deleted, have %d", got)
	}
	if !strings.Contains(m.status, "Deleted") {
		t.Fatalf("expected deleted status, got %q", m.status)
	}
}

func TestSaveFormCreatesRecordOnSelectedDay(t *testing.T) {
	m, fp := newTestModel(t)
	m = loadInto(t, m)

	var cmds []tea.Cmd
	m.startCreate(&cmds)
	if m.mode != modeEdit {
		t.Fatalf("expected edit mode")
	}
	if got := m.form.inputs[fieldDate].Value(); got != "2026-05-24" {
		t.Fatalf("expected date prefilled with selected day, got %q", got)
	}

	m.form.inputs[fieldTitle].SetValue("Monaco GP")
	m.form.inputs[fieldContent].SetValue("Chaotic race.")
	m.form.inputs[fieldFirst].SetValue("VER")
	m.form.inputs[fieldGrid].SetValue("1=44 2=16")

	if cmd := m.saveForm(); cmd == nil {
		t.Fatalf("expected reload command after save")
	}
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after save")
	}

	records := fp.snapshot()
	if len(records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(records))
	}
	r := records[0]
	if r.ID <= 0 {
		t.Fatalf("expected assigned id, got %d", r.ID)
	}
	if r.Podium.First != "VER" || r.Grid[1] != "44" || r.Grid[2] != "16" {
		t.Fatalf("unexpected stored record %+v", r)
	}
}

func TestSaveFormValidationKeepsEditor(t *testing.T) {
	m, fp := newTestModel(t)
	m = loadInto(t, m)

	var cmds []tea.Cmd
	m.startCreate(&cmds)
	m.form.inputs[fieldTitle].SetValue("No notes yet")

	if cmd := m.saveForm(); cmd != nil {
		t.Fatalf("expected no reload on validation failure")
	}
	if m.mode != modeEdit {
		t.Fatalf("expected editor to stay open")
	}
	if !strings.Contains(m.status, "ERR") {
		t.Fatalf("expected error status, got %q", m.status)
	}
	if got := m.form.inputs[fieldTitle].Value(); got != "No notes yet" {
		t.Fatalf("form state lost on failed save: %q", got)
	}
	if got := len(fp.snapshot()); got != 0 {
		t.Fatalf("failed save must not persist, have %d records", got)
	}
}

func TestSaveFormRejectsClearedDate(t *testing.T) {
	m, fp := newTestModel(t)
	m = loadInto(t, m)

	var cmds []tea.Cmd
	m.startCreate(&cmds)
	m.form.inputs[fieldTitle].SetValue("Monaco GP")
	m.form.inputs[fieldContent].SetValue("notes")
	m.form.inputs[fieldDate].SetValue("")

	if cmd := m.saveForm(); cmd != nil {
		t.Fatalf("expected no reload when date is cleared")
	}
	if m.mode != modeEdit {
		t.Fatalf("expected editor to stay open")
	}
	if !strings.Contains(m.status, "ERR") {
		t.Fatalf("expected error status, got %q", m.status)
	}
	if got := len(fp.snapshot()); got != 0 {
		t.Fatalf("dateless record must not persist, have %d records", got)
	}
}

func TestSaveOfVanishedRecordSurfacesError(t *testing.T) {
	m, fp := newTestModel(t, newRecord(7, "Monaco GP", "2026-05-24"))
	m = loadInto(t, m)
	m = press(m, "tab")

	var cmds []tea.Cmd
	r := *m.currentRecord()
	m.startEdit(r, &cmds)

	// The record disappears underneath the editor.
	fp.mu.Lock()
	fp.records = nil
	fp.mu.Unlock()

	if cmd := m.saveForm(); cmd != nil {
		t.Fatalf("expected no reload when update fails")
	}
	if m.mode != modeEdit {
		t.Fatalf("expected editor to stay open on missing record")
	}
	if !strings.Contains(m.status, "ERR") {
		t.Fatalf("expected error status, got %q", m.status)
	}
}

func TestStoreChangeQueuesReload(t *testing.T) {
	m, _ := newTestModel(t)
	model, cmd := m.Update(storeChangedMsg{})
	if cmd == nil {
		t.Fatalf("expected reload command on store change")
	}
	_ = model
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newRecord(id int64, title, date string) diary.Record {
	return diary.Record{
		ID:      id,
		Title:   title,
		Date:    date,
		Content: "notes",
	}
}

type fakePersistence struct {
	mu      sync.Mutex
	records []diary.Record
}

func (f *fakePersistence) LoadAll(ctx context.Context) ([]diary.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]diary.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (f *fakePersistence) SaveAll(ctx context.Context, records []diary.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]diary.Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.Clone())
	}
	f.records = out
	return nil
}

func (f *fakePersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (f *fakePersistence) snapshot() []diary.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]diary.Record(nil), f.records...)
}

var _ store.Persistence = (*fakePersistence)(nil)
