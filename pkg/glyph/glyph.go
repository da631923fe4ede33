package glyph

import "fmt"

// Glyph pairs a calendar/listing symbol with its meaning.
type Glyph struct {
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
)

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

var (
	// Entry marks a calendar date that has diary records.
	Entry = Glyph{Symbol: "●", Meaning: "has entries"}
	// Selected marks the currently selected calendar date.
	Selected = Glyph{Symbol: "▸", Meaning: "selected"}
	// Today marks the current date.
	Today = Glyph{Symbol: "○", Meaning: "today"}
	// Trophy heads the podium row of a record card.
	Trophy = Glyph{Symbol: "🏆", Meaning: "podium"}
	// Pin heads the location line.
	Pin = Glyph{Symbol: "📍", Meaning: "location"}
	// Photo flags a record carrying an image reference.
	Photo = Glyph{Symbol: "📷", Meaning: "photo attached"}
)

func (g Glyph) String() string {
	return g.Symbol
}

// DefaultGlyphs lists every symbol the calendar and record cards use, in
// legend order.
func DefaultGlyphs() []Glyph {
	return []Glyph{Entry, Selected, Today, Trophy, Pin, Photo}
}
