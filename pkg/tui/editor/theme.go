package editor

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/postcard/pkg/catalog"
)

// Theme centralizes Lip Gloss styles for the editor.
type Theme struct {
	Title    lipgloss.Style
	Node     lipgloss.Style
	Selected lipgloss.Style
	ID       lipgloss.Style
	Help     lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Frame    lipgloss.Style
	Picker   lipgloss.Style
}

// ThemeFor derives the editor styles from the palette of a catalog theme,
// so the outline reads in the same colors the presets are built with.
func ThemeFor(t catalog.Theme) Theme {
	p := catalog.PaletteFor(t)
	accent := lipgloss.Color(p.Accent)
	muted := lipgloss.Color(p.Muted)
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Underline(true),
		Node:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentText)).Background(accent),
		ID:       lipgloss.NewStyle().Foreground(muted).Italic(true),
		Help:     lipgloss.NewStyle().Foreground(muted),
		Status:   lipgloss.NewStyle().Foreground(accent),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true),
		Frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.Border)).Padding(0, 1),
		Picker:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
	}
}
