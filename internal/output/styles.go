package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Colour palette. Never use inline lipgloss.Color literals elsewhere.
var (
	ColorMagenta = lipgloss.Color("13")
	ColorCyan    = lipgloss.Color("14")
	ColorYellow  = lipgloss.Color("220")
	ColorRed     = lipgloss.Color("196")
	ColorGreen   = lipgloss.Color("10")
)

var (
	// StyleCreated styles "Creating directory/file" progress lines.
	StyleCreated = lipgloss.NewStyle().Foreground(ColorMagenta)

	// StyleNoun styles identifiable nouns such as scaffold types.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleWarning styles usage warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)

	// StyleError styles fatal messages.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)

	// StyleSummary styles completion lines.
	StyleSummary = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
)

// CreatingLine formats the progress line for a created directory or file.
func CreatingLine(kind, path string) string {
	return StyleCreated.Render("Creating " + kind + ": " + path)
}
