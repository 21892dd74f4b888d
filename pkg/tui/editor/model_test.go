package editor

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/model"
)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newEditor(t *testing.T) (Model, *app.Session) {
	t.Helper()
	s, err := app.Open(context.Background(), app.WithHistory(0, time.Hour))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return New(s, catalog.ThemeLight), s
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+r":
			msg = tea.KeyMsg{Type: tea.KeyCtrlR}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestEmptyCanvasHint(t *testing.T) {
	m, _ := newEditor(t)
	view := stripANSIString(m.View())
	if !strings.Contains(view, "empty canvas") {
		t.Fatalf("expected empty hint, got:\n%s", view)
	}
}

func TestInstallPresetFocusesBlock(t *testing.T) {
	m, s := newEditor(t)
	m = press(m, "p", "enter")

	doc := s.Document()
	if len(doc.Components) != 1 {
		t.Fatalf("components = %d, want 1", len(doc.Components))
	}
	sel := s.Selection()
	if sel.Level != model.LevelBlock || sel.BlockID != doc.Components[0].Block.ID {
		t.Fatalf("selection = %+v, want the new block", sel)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	view := stripANSIString(m.View())
	if !strings.Contains(view, "Header") {
		t.Fatalf("expected preset label in view, got:\n%s", view)
	}
}

func TestAddWithoutFocusReportsError(t *testing.T) {
	m, s := newEditor(t)
	m = press(m, "a")
	if !m.failed {
		t.Fatalf("expected a failed status, got %q", m.status)
	}
	if len(s.Document().Components) != 0 {
		t.Fatal("nothing should have been added")
	}
}

func TestAddRowThenUndoRedo(t *testing.T) {
	m, s := newEditor(t)
	m = press(m, "p", "enter")
	rows := len(s.Document().Components[0].Block.Rows)

	m = press(m, "a")
	if got := len(s.Document().Components[0].Block.Rows); got != rows+1 {
		t.Fatalf("rows = %d, want %d", got, rows+1)
	}
	if s.Selection().Level != model.LevelRow {
		t.Fatalf("selection level = %q, want row", s.Selection().Level)
	}

	m = press(m, "u")
	if got := len(s.Document().Components); got != 0 {
		t.Fatalf("after undo components = %d, want 0", got)
	}
	if len(m.lines) != 0 {
		t.Fatalf("outline not refreshed: %d lines", len(m.lines))
	}

	m = press(m, "ctrl+r")
	if got := len(s.Document().Components[0].Block.Rows); got != rows+1 {
		t.Fatalf("after redo rows = %d, want %d", got, rows+1)
	}
	if m.lines[m.cursor].ID != s.Selection().TargetID() {
		t.Fatal("cursor does not follow the restored selection")
	}
}

func TestCursorSelectsNodes(t *testing.T) {
	m, s := newEditor(t)
	m = press(m, "p", "enter", "j")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	if s.Selection().TargetID() != m.lines[1].ID {
		t.Fatalf("selection %q does not match line %q", s.Selection().TargetID(), m.lines[1].ID)
	}
	m = press(m, "k", "k")
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}

func TestDuplicateMoveAndRemoveBlock(t *testing.T) {
	m, s := newEditor(t)
	m = press(m, "p", "enter", "d")
	doc := s.Document()
	if len(doc.Components) != 2 {
		t.Fatalf("components = %d, want 2", len(doc.Components))
	}
	copyID := s.Selection().BlockID
	if copyID != doc.Components[1].Block.ID {
		t.Fatal("duplicate should focus the copy")
	}

	m = press(m, "K")
	if s.Document().Components[0].Block.ID != copyID {
		t.Fatal("copy should have moved to the top")
	}
	m = press(m, "K")
	if !m.failed {
		t.Fatal("moving past the top should fail")
	}

	m = press(m, "x")
	if got := len(s.Document().Components); got != 1 {
		t.Fatalf("components = %d, want 1", got)
	}
	if _, ok := s.Resolve(copyID); ok {
		t.Fatal("removed block still resolves")
	}
}

func TestTabCyclesAtomType(t *testing.T) {
	m, _ := newEditor(t)
	m = press(m, "tab")
	if got := model.AllAtomTypes()[m.atomType]; got != model.AtomButton {
		t.Fatalf("atom type = %q, want button", got)
	}
	if !strings.Contains(stripANSIString(m.View()), "atom:button") {
		t.Fatal("status line should show the atom type")
	}
}

func TestPresetPickerCancel(t *testing.T) {
	m, s := newEditor(t)
	m = press(m, "p", "j", "esc")
	if m.mode != modeOutline {
		t.Fatal("esc should close the picker")
	}
	if len(s.Document().Components) != 0 {
		t.Fatal("cancelled picker installed a preset")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newEditor(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestSetFieldOnFocusedBlock(t *testing.T) {
	m, s := newEditor(t)
	m = press(m, "p", "enter", "s")
	if m.mode != modeSettings {
		t.Fatal("s should open the settings prompt")
	}
	m = press(m, "label Hero", "enter")
	if m.mode != modeOutline || m.failed {
		t.Fatalf("mode = %d, status = %q", m.mode, m.status)
	}
	if got := s.Document().Components[0].Block.Label; got != "Hero" {
		t.Fatalf("label = %q, want Hero", got)
	}
	if !strings.Contains(stripANSIString(m.View()), "Hero") {
		t.Fatal("outline should show the new label")
	}
}

func TestSetGeneralWithoutFocus(t *testing.T) {
	m, s := newEditor(t)
	m = press(m, "s", "previewText Spring", "enter")
	if got := s.Document().General.PreviewText; got != "Spring" {
		t.Fatalf("preview text = %q, want Spring", got)
	}

	m = press(m, "s", "shadow 3", "enter")
	if !m.failed {
		t.Fatalf("unknown field should fail, status %q", m.status)
	}

	m = press(m, "s", "previewText Winter", "esc")
	if m.mode != modeOutline {
		t.Fatal("esc should close the prompt")
	}
	if got := s.Document().General.PreviewText; got != "Spring" {
		t.Fatalf("cancelled prompt changed preview text to %q", got)
	}
}

func TestOutlineScrollsWithCursor(t *testing.T) {
	m, _ := newEditor(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = next.(Model)
	m = press(m, "p", "enter", "p", "enter", "p", "enter")
	for i := 0; i < len(m.lines); i++ {
		m = press(m, "j")
	}
	if m.cursor != len(m.lines)-1 {
		t.Fatalf("cursor = %d, want the last line %d", m.cursor, len(m.lines)-1)
	}
	top, h := m.outline.YOffset, m.outline.Height
	if top == 0 || m.cursor < top || m.cursor >= top+h {
		t.Fatalf("cursor %d outside window [%d,%d)", m.cursor, top, top+h)
	}

	m = press(m, "esc")
	for i := 0; i < len(m.lines); i++ {
		m = press(m, "k")
	}
	if m.outline.YOffset != 0 {
		t.Fatalf("offset = %d, want 0 back at the top", m.outline.YOffset)
	}
}
