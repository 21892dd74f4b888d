// Package editor is the interactive outline editor for the live template.
package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/edit"
	"tableflip.dev/postcard/pkg/model"
)

type mode int

const (
	modeOutline mode = iota
	modePresets
	modeSettings
)

const helpLine = "↑/↓ focus · a add · tab atom type · p preset · s set · d duplicate · x remove · J/K move · u undo · ctrl+r redo · q quit"

// Model drives a Session from the keyboard.
type Model struct {
	session *app.Session
	theme   Theme
	palette catalog.Theme

	lines   []line
	cursor  int
	outline viewport.Model

	mode     mode
	picker   list.Model
	input    textinput.Model
	atomType int

	width  int
	height int
	status string
	failed bool
}

// New returns an editor bound to s. Presets are instantiated in palette.
func New(s *app.Session, palette catalog.Theme) Model {
	theme := ThemeFor(palette)
	input := textinput.New()
	input.Prompt = "set › "
	input.Placeholder = "field value, e.g. gap 12"
	input.CharLimit = 256

	m := Model{
		session: s,
		theme:   theme,
		palette: palette,
		outline: viewport.New(76, 20),
		picker:  newPicker(palette, theme),
		input:   input,
		width:   80,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.outline.Width = max(msg.Width-4, 16)
		m.outline.Height = max(msg.Height-8, 3)
		m.picker.SetSize(max(msg.Width-4, 16), max(msg.Height/2, 8))
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modePresets:
			return m.updatePresets(msg)
		case modeSettings:
			return m.updateSettings(msg)
		}
		return m.updateOutline(msg)
	}
	return m, nil
}

func (m Model) updateOutline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.failed = "", false
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.focus(m.cursor - 1)
	case "down", "j":
		m.focus(m.cursor + 1)
	case "esc":
		m.session.Select(model.Selection{})
	case "K", "shift+up":
		m.report(m.session.MoveSelectedBy(-1), "moved up", "cannot move up")
	case "J", "shift+down":
		m.report(m.session.MoveSelectedBy(1), "moved down", "cannot move down")
	case "d":
		m.report(m.session.DuplicateSelected() != "", "duplicated", "nothing to duplicate")
	case "x", "delete", "backspace":
		m.report(m.session.RemoveSelected(), "removed", "cannot remove")
	case "a":
		m.add()
	case "tab":
		types := model.AllAtomTypes()
		m.atomType = (m.atomType + 1) % len(types)
		m.status = "adding " + string(types[m.atomType]) + " atoms"
	case "p":
		m.mode = modePresets
	case "s":
		m.mode = modeSettings
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case "u":
		m.report(m.session.Undo(), "undone", "nothing to undo")
	case "ctrl+r":
		m.report(m.session.Redo(), "redone", "nothing to redo")
	}
	m.refresh()
	return m, nil
}

func (m Model) updatePresets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeOutline
		return m, nil
	case "enter":
		m.mode = modeOutline
		if it, ok := m.picker.SelectedItem().(presetItem); ok {
			m.install(it.name)
		}
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeOutline
		m.input.Blur()
		return m, nil
	case "enter":
		m.mode = modeOutline
		m.input.Blur()
		m.status, m.failed = "", false
		m.applySetting(m.input.Value())
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// focus moves the cursor to line i and selects its node.
func (m *Model) focus(i int) {
	if i < 0 || i >= len(m.lines) {
		return
	}
	m.session.SelectID(m.lines[i].ID)
}

func (m *Model) report(ok bool, done, failed string) {
	if ok {
		m.status = done
		return
	}
	m.status, m.failed = failed, true
}

// add inserts a default child of the focused node: a row into a block, a
// cell into a row, an atom into a cell, or an atom after the focused atom.
func (m *Model) add() {
	sel := m.session.Selection()
	t := model.AllAtomTypes()[m.atomType]
	var id string
	switch sel.Level {
	case model.LevelNone:
		m.status, m.failed = "focus a node or press p for a preset", true
		return
	case model.LevelBlock:
		if r := m.session.InsertRow(sel.BlockID, -1); r != nil {
			id = r.ID
		}
	case model.LevelRow:
		if c := m.session.InsertCell(sel.BlockID, sel.RowID, -1); c != nil {
			id = c.ID
		}
	case model.LevelCell:
		if a := m.session.InsertAtom(sel.BlockID, sel.RowID, sel.CellID, t, -1); a != nil {
			id = a.AtomID()
		}
	case model.LevelAtom:
		at, _, _ := m.session.Position()
		if a := m.session.InsertAtom(sel.BlockID, sel.RowID, sel.CellID, t, at+1); a != nil {
			id = a.AtomID()
		}
	}
	if id == "" {
		m.status, m.failed = "cannot add here", true
		return
	}
	m.session.SelectID(id)
	m.status = "added"
}

// install places a preset after the focused block, or at the end.
func (m *Model) install(name string) {
	p, err := catalog.New(name, m.palette, "")
	if err != nil {
		m.status, m.failed = err.Error(), true
		return
	}
	at := -1
	if sel := m.session.Selection(); !sel.IsZero() {
		for i, c := range m.session.Document().Components {
			if c.Block != nil && c.Block.ID == sel.BlockID {
				at = i + 1
				break
			}
		}
	}
	inst := m.session.InstallPreset(p, at)
	if inst == nil {
		m.status, m.failed = "cannot install "+name, true
		return
	}
	m.session.SelectID(inst.Block.ID)
	m.status = "added " + p.Label
}

// applySetting reads "<field> <value>" and writes it to the focused node, or
// to the page settings when nothing is focused. An empty value clears the
// fields that can be cleared.
func (m *Model) applySetting(raw string) {
	field, value, _ := strings.Cut(strings.TrimSpace(raw), " ")
	if field == "" {
		m.status, m.failed = "type a field and a value", true
		return
	}
	key := edit.SettingKey{Scope: edit.ScopeGeneral, Field: edit.Field(field)}
	if sel := m.session.Selection(); !sel.IsZero() {
		key = edit.SettingKey{
			Scope:    edit.ScopeSettings,
			Level:    sel.Level,
			TargetID: sel.TargetID(),
			Field:    edit.Field(field),
		}
	}
	m.report(m.session.UpdateSetting(key, strings.TrimSpace(value)), "set "+field, "cannot set "+field)
}

// refresh rebuilds the outline, puts the cursor on the focused node and
// scrolls it into view.
func (m *Model) refresh() {
	m.lines = flatten(m.session.Document(), uint(max(m.width-8, 16)))
	if i := indexOf(m.lines, m.session.Selection().TargetID()); i >= 0 {
		m.cursor = i
	} else {
		m.cursor = min(m.cursor, max(len(m.lines)-1, 0))
	}
	m.outline.SetContent(m.outlineContent())
	switch h := m.outline.Height; {
	case m.cursor < m.outline.YOffset:
		m.outline.SetYOffset(m.cursor)
	case m.cursor >= m.outline.YOffset+h:
		m.outline.SetYOffset(m.cursor - h + 1)
	}
}

func (m Model) outlineContent() string {
	if len(m.lines) == 0 {
		return m.theme.Help.Render("empty canvas, press p to add a preset")
	}
	sel := m.session.Selection().TargetID()
	rendered := make([]string, 0, len(m.lines))
	for _, l := range m.lines {
		text := strings.Repeat("  ", l.Depth) + l.Text
		if l.ID == sel {
			rendered = append(rendered, m.theme.Selected.Render(text))
		} else {
			rendered = append(rendered, m.theme.Node.Render(text))
		}
	}
	return strings.Join(rendered, "\n")
}

// View implements tea.Model.
func (m Model) View() string {
	body := m.theme.Title.Render(m.session.Title()) + "\n\n" + m.outline.View()
	parts := []string{m.theme.Frame.Render(body)}
	switch m.mode {
	case modePresets:
		parts = append(parts, m.theme.Picker.Render(m.picker.View()))
	case modeSettings:
		parts = append(parts, m.theme.Picker.Render(m.input.View()))
	}
	parts = append(parts, m.statusView(), m.theme.Help.Render(helpLine))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusView() string {
	undo := "-"
	if m.session.CanUndo() {
		undo = "u"
	}
	redo := "-"
	if m.session.CanRedo() {
		redo = "r"
	}
	t := model.AllAtomTypes()[m.atomType]
	info := fmt.Sprintf("[%s%s] atom:%s", undo, redo, t)
	if m.status == "" {
		return m.theme.Status.Render(info)
	}
	if m.failed {
		return m.theme.Status.Render(info) + " " + m.theme.Error.Render(m.status)
	}
	return m.theme.Status.Render(info + " " + m.status)
}
