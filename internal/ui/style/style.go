// Package style provides shared brand colors, icons and text styles for the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// Folder is the heading style for a group of items.
func Folder(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Iris).Bold(true)
}

// Name is the style for an item's display name.
func Name(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Bold(true)
}

// Muted is the style for secondary details.
func Muted(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Slate)
}
