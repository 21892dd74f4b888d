package editor

import (
	"github.com/charmbracelet/bubbles/list"

	"tableflip.dev/postcard/pkg/catalog"
)

// presetItem is one catalog preset in the picker.
type presetItem struct {
	name    string
	label   string
	preview string
}

func (p presetItem) Title() string       { return p.label }
func (p presetItem) Description() string { return p.preview }
func (p presetItem) FilterValue() string { return p.name }

func newPicker(palette catalog.Theme, theme Theme) list.Model {
	presets := catalog.All(palette)
	items := make([]list.Item, 0, len(presets))
	for _, p := range presets {
		items = append(items, presetItem{name: p.Name, label: p.Label, preview: p.Preview})
	}

	accent := theme.Status.GetForeground()
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Copy().Foreground(accent).BorderLeftForeground(accent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Copy().BorderLeftForeground(accent)

	l := list.New(items, d, 40, 14)
	l.Title = "add preset"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}
