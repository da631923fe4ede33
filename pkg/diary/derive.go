package diary

// Marker is the derived per-date calendar flag set. HasEntries and Selected
// may coexist on one date.
type Marker struct {
	HasEntries bool
	Selected   bool
}

// Markers derives the calendar marker set for the collection: every distinct
// date present is flagged HasEntries, and the selected date is always flagged
// Selected whether or not it has entries.
func Markers(records []Record, selected string) map[string]Marker {
	marks := make(map[string]Marker, len(records)+1)
	for _, r := range records {
		m := marks[r.Date]
		m.HasEntries = true
		marks[r.Date] = m
	}
	if selected != "" {
		m := marks[selected]
		m.Selected = true
		marks[selected] = m
	}
	return marks
}

// ForDate filters the collection by exact date equality, preserving the
// original relative order. A date with no matches yields an empty slice.
func ForDate(records []Record, date string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// ByID returns the index of the record with the given identity, or -1.
func ByID(records []Record, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
