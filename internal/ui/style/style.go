// Package style holds the colors, icons and text styles shared by every
// human-facing renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Plus    = "+"
	Minus   = "-"
	Tilde   = "~"
	Dot     = "●"
)

// Styles are the plan line styles bound to one renderer.
type Styles struct {
	Added    lipgloss.Style
	Removed  lipgloss.Style
	Changed  lipgloss.Style
	Muted    lipgloss.Style
	Warning  lipgloss.Style
	Headline lipgloss.Style
}

// New returns the styles for r.
func New(r *lipgloss.Renderer) Styles {
	return Styles{
		Added:    r.NewStyle().Foreground(Green),
		Removed:  r.NewStyle().Foreground(Red),
		Changed:  r.NewStyle().Foreground(Yellow),
		Muted:    r.NewStyle().Foreground(Slate),
		Warning:  r.NewStyle().Foreground(Yellow),
		Headline: r.NewStyle().Foreground(Iris).Bold(true),
	}
}
