// Package theme holds the browser color palette.
package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// AccentHex is the marker red used for dates carrying entries.
const AccentHex = "#E10600"

// Accent returns the marker color.
func Accent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(AccentHex))
}

// Faded blends the accent toward the terminal background so secondary chrome
// does not compete with the markers.
func Faded(amount float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fade(AccentHex, amount)))
}

func fade(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	grey, _ := colorful.Hex("#666666")
	return c.BlendLab(grey, amount).Hex()
}

// Muted is the low-contrast text style for help and status lines.
func Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
}
