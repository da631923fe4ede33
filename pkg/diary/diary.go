package diary

import (
	"fmt"
	"time"
)

const (
	layoutISO = "2006-01-02"

	// GridMin and GridMax bound the valid starting-grid positions.
	GridMin = 1
	GridMax = 22
)

// Podium holds the top-three finishers as free-text labels. Labels usually
// carry a driver number but are not validated numerically.
type Podium struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

// Record is one race-weekend journal entry. ID is the creation timestamp in
// milliseconds and never changes after creation. Date is the grouping key in
// YYYY-MM-DD form. Image is an opaque reference to a locally picked photo;
// the bytes behind it are never touched.
type Record struct {
	ID       int64          `json:"id"`
	Title    string         `json:"title"`
	Date     string         `json:"date"`
	Location string         `json:"location,omitempty"`
	Podium   Podium         `json:"podium"`
	Grid     map[int]string `json:"grid,omitempty"`
	Content  string         `json:"content"`
	Image    string         `json:"image,omitempty"`
}

// New returns an empty draft for the given date.
func New(date string) Record {
	return Record{Date: date}
}

// SetGridSlot merges one position into the grid, leaving other slots
// untouched. An empty label clears the slot. Positions outside GridMin..GridMax
// are rejected.
func (r *Record) SetGridSlot(position int, label string) error {
	if position < GridMin || position > GridMax {
		return fmt.Errorf("diary: grid position %d out of range %d..%d", position, GridMin, GridMax)
	}
	if label == "" {
		delete(r.Grid, position)
		return nil
	}
	if r.Grid == nil {
		r.Grid = make(map[int]string)
	}
	r.Grid[position] = label
	return nil
}

// Validate enforces the save gate: title and content are required.
func (r Record) Validate() error {
	if r.Title == "" {
		return &ValidationError{Field: "title"}
	}
	if r.Content == "" {
		return &ValidationError{Field: "content"}
	}
	return nil
}

// Clone returns a deep copy so drafts can be mutated without aliasing the
// original's grid map.
func (r Record) Clone() Record {
	cp := r
	if r.Grid != nil {
		cp.Grid = make(map[int]string, len(r.Grid))
		for pos, label := range r.Grid {
			cp.Grid[pos] = label
		}
	}
	return cp
}

// ValidationError reports a missing required field, detected before any store
// interaction.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("diary: %s is required", e.Field)
}

// FormatDate renders t as the canonical zero-padded YYYY-MM-DD key.
func FormatDate(t time.Time) string {
	return t.Format(layoutISO)
}

// ParseDate parses a canonical date key back into a time value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("diary: parse date %q: %w", s, err)
	}
	return t, nil
}

// Today returns the current local date key.
func Today() string {
	return FormatDate(time.Now())
}
