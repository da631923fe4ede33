package diary

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestValidateRequiresTitleAndContent(t *testing.T) {
	r := Record{Title: "Race 1", Content: "Great race"}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	r = Record{Content: "Great race"}
	err := r.Validate()
	if err == nil {
		t.Fatal("expected validation error for missing title")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Field != "title" {
		t.Fatalf("expected title field, got %q", ve.Field)
	}

	r = Record{Title: "Race 1"}
	if err := r.Validate(); err == nil {
		t.Fatal("expected validation error for missing content")
	}
}

func TestSetGridSlot(t *testing.T) {
	var r Record
	if err := r.SetGridSlot(1, "44"); err != nil {
		t.Fatalf("set slot 1: %v", err)
	}
	if err := r.SetGridSlot(22, "16"); err != nil {
		t.Fatalf("set slot 22: %v", err)
	}
	if err := r.SetGridSlot(5, "63"); err != nil {
		t.Fatalf("set slot 5: %v", err)
	}
	if got := r.Grid[1]; got != "44" {
		t.Fatalf("slot 1 = %q, want 44", got)
	}

	// merging one slot leaves the others untouched
	if err := r.SetGridSlot(5, "81"); err != nil {
		t.Fatalf("overwrite slot 5: %v", err)
	}
	if r.Grid[1] != "44" || r.Grid[22] != "16" || r.Grid[5] != "81" {
		t.Fatalf("unexpected grid after merge: %v", r.Grid)
	}

	// empty label clears the slot
	if err := r.SetGridSlot(5, ""); err != nil {
		t.Fatalf("clear slot 5: %v", err)
	}
	if _, ok := r.Grid[5]; ok {
		t.Fatal("expected slot 5 cleared")
	}
}

func TestSetGridSlotRejectsOutOfRange(t *testing.T) {
	var r Record
	for _, pos := range []int{0, -1, 23, 100} {
		if err := r.SetGridSlot(pos, "44"); err == nil {
			t.Fatalf("expected error for position %d", pos)
		}
	}
	if len(r.Grid) != 0 {
		t.Fatalf("grid should be untouched, got %v", r.Grid)
	}
}

func TestGridSerializesAsStringKeyedObject(t *testing.T) {
	r := Record{ID: 1700000000000, Title: "Race", Content: "notes", Date: "2024-03-10"}
	if err := r.SetGridSlot(1, "44"); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"grid":{"1":"44"}`) {
		t.Fatalf("expected string-keyed grid object, got %s", data)
	}

	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Grid[1] != "44" {
		t.Fatalf("round-trip lost grid slot: %v", back.Grid)
	}
}

func TestFormatDateZeroPads(t *testing.T) {
	d := time.Date(2024, time.March, 9, 15, 4, 5, 0, time.UTC)
	if got := FormatDate(d); got != "2024-03-09" {
		t.Fatalf("FormatDate = %q, want 2024-03-09", got)
	}
	back, err := ParseDate("2024-03-09")
	if err != nil {
		t.Fatal(err)
	}
	if back.Year() != 2024 || back.Month() != time.March || back.Day() != 9 {
		t.Fatalf("ParseDate mismatch: %v", back)
	}
	if _, err := ParseDate("2024-3-9"); err == nil {
		t.Fatal("expected error for non-padded date")
	}
}

func TestForDateFiltersInOrder(t *testing.T) {
	records := []Record{
		{ID: 1, Date: "2024-03-10"},
		{ID: 2, Date: "2024-03-10"},
		{ID: 3, Date: "2024-03-11"},
	}
	got := ForDate(records, "2024-03-10")
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("relative order not preserved: %v", got)
	}

	if got := ForDate(records, "2024-04-01"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestMarkersCoexist(t *testing.T) {
	records := []Record{
		{ID: 1, Date: "2024-03-10"},
		{ID: 2, Date: "2024-03-11"},
	}
	marks := Markers(records, "2024-03-10")
	if len(marks) != 2 {
		t.Fatalf("expected 2 marked dates, got %d", len(marks))
	}
	m := marks["2024-03-10"]
	if !m.HasEntries || !m.Selected {
		t.Fatalf("expected both flags on selected date, got %+v", m)
	}
	m = marks["2024-03-11"]
	if !m.HasEntries || m.Selected {
		t.Fatalf("unexpected flags on unselected date: %+v", m)
	}

	// a selected date without entries is still marked selected
	marks = Markers(records, "2024-04-01")
	if m := marks["2024-04-01"]; !m.Selected || m.HasEntries {
		t.Fatalf("unexpected flags on empty selected date: %+v", m)
	}
}

func TestCloneDoesNotAliasGrid(t *testing.T) {
	r := Record{Title: "Race", Content: "notes"}
	if err := r.SetGridSlot(1, "44"); err != nil {
		t.Fatal(err)
	}
	cp := r.Clone()
	if err := cp.SetGridSlot(1, "16"); err != nil {
		t.Fatal(err)
	}
	if r.Grid[1] != "44" {
		t.Fatalf("clone aliased the grid: %v", r.Grid)
	}
}
