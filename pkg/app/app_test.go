package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/edit"
	"tableflip.dev/postcard/pkg/history"
	"tableflip.dev/postcard/pkg/logging"
	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/store"
	"tableflip.dev/postcard/pkg/templateio"
)

type memoryPersistence struct {
	mu       sync.Mutex
	template []byte
	library  map[string][]byte
	saves    int
	fail     bool
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{library: make(map[string][]byte)}
}

func (m *memoryPersistence) LoadTemplate() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.template == nil {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), m.template...), nil
}

func (m *memoryPersistence) SaveTemplate(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("disk full")
	}
	m.saves++
	m.template = append([]byte(nil), data...)
	return nil
}

func (m *memoryPersistence) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.template = nil
	return nil
}

func (m *memoryPersistence) SaveNamed(name string, data []byte) error {
	if strings.TrimSpace(name) == "" {
		return store.ErrNameRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.library[name] = append([]byte(nil), data...)
	return nil
}

func (m *memoryPersistence) LoadNamed(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.library[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

func (m *memoryPersistence) ListNamed(context.Context) []store.Named {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Named, 0, len(m.library))
	for name, data := range m.library {
		n := store.Named{Name: name}
		if !json.Valid(data) {
			n.Err = errors.New("invalid json")
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *memoryPersistence) DeleteNamed(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.library, name)
	return nil
}

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualClock holds debounce callbacks until elapse.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) history.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) elapse() {
	c.mu.Lock()
	timers := c.timers
	c.timers = nil
	c.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

func open(t *testing.T, opts ...Option) (*Session, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	s, err := Open(context.Background(), append([]Option{WithScheduler(clock)}, opts...)...)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, clock
}

func preset(t *testing.T, name string) catalog.BlockPreset {
	t.Helper()
	p, err := catalog.New(name, catalog.ThemeLight, "")
	if err != nil {
		t.Fatalf("preset %s: %v", name, err)
	}
	return p
}

// withoutIDs blanks every id so that documents can be compared by shape.
func withoutIDs(doc *model.Document) *model.Document {
	doc = doc.Clone()
	var rows func([]*model.Row)
	rows = func(rs []*model.Row) {
		for _, r := range rs {
			r.ID = ""
			for _, c := range r.Cells {
				c.ID = ""
				for _, a := range c.Atoms {
					a.(interface{ SetAtomID(string) }).SetAtomID("")
				}
				rows(c.Rows)
			}
		}
	}
	for _, comp := range doc.Components {
		comp.ID = ""
		comp.Block.ID = ""
		rows(comp.Block.Rows)
	}
	return doc
}

func TestExportImportRoundTrip(t *testing.T) {
	s, _ := open(t)
	hero := s.InstallPreset(preset(t, "text"), edit.End)
	s.InstallPreset(preset(t, "button"), edit.End)
	if hero == nil {
		t.Fatal("expected the preset to be installed")
	}
	s.InsertRow(hero.Block.ID, edit.End)
	key := edit.SettingKey{Scope: edit.ScopeGeneral, Field: edit.FieldPreviewText}
	if !s.UpdateSetting(key, "Spring sale") {
		t.Fatal("expected preview text to update")
	}

	raw, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	other, _ := open(t)
	if res := other.Import(raw, ImportOptions{Mode: ImportReplace}); !res.OK {
		t.Fatalf("import: %v", res.Issues)
	}

	want, got := withoutIDs(s.Document()), withoutIDs(other.Document())
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip changed the document (-want +got):\n%s", diff)
	}
}

func TestReplaceImportIsUndoable(t *testing.T) {
	src, _ := open(t)
	src.InstallPreset(preset(t, "footer"), edit.End)
	raw, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	s, _ := open(t)
	header := s.InstallPreset(preset(t, "header"), edit.End)
	if res := s.Import(raw, ImportOptions{Mode: ImportReplace}); !res.OK {
		t.Fatalf("import: %v", res.Issues)
	}
	doc := s.Document()
	if len(doc.Components) != 1 || doc.Components[0].ID == header.ID {
		t.Fatalf("expected the imported template, got %+v", doc.Components)
	}
	imported := doc.Components[0].ID

	if !s.Undo() {
		t.Fatal("expected the import to be undoable")
	}
	doc = s.Document()
	if len(doc.Components) != 1 || doc.Components[0].ID != header.ID {
		t.Fatalf("undo should bring back the header only, got %+v", doc.Components)
	}
	if !s.Redo() {
		t.Fatal("expected redo")
	}
	if got := s.Document().Components[0].ID; got != imported {
		t.Fatalf("redo should reapply the import, got %s", got)
	}
}

func TestIDsStayUnique(t *testing.T) {
	s, _ := open(t)
	comp := s.InstallPreset(preset(t, "two-column"), edit.End)
	s.DuplicateComponent(comp.ID)
	row := comp.Block.Rows[0]
	s.DuplicateRow(comp.Block.ID, row.ID)
	s.DuplicateCell(comp.Block.ID, row.ID, row.Cells[0].ID)
	s.InsertRowInCell(comp.Block.ID, row.ID, row.Cells[1].ID, edit.End)

	raw, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	s.Import(raw, ImportOptions{Mode: ImportAppend})

	seen := map[string]bool{}
	for _, id := range s.Document().IDs() {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if got := len(s.Document().Components); got != 4 {
		t.Fatalf("expected 4 components after append, got %d", got)
	}
}

func TestImportFailureChangesNothing(t *testing.T) {
	mp := newMemoryPersistence()
	s, _ := open(t, WithPersistence(mp))
	s.InstallPreset(preset(t, "divider"), edit.End)
	before := s.Document()
	saves := mp.saves

	for _, raw := range []string{
		`{"version":2`,
		`{"version":1,"meta":{},"editor":{},"canvas":{"components":[]}}`,
		`{"version":2,"meta":{"id":"x","title":"t","createdAt":"","updatedAt":""},"editor":{"general":{}},"canvas":{"components":[{"id":"c","version":2,"block":{"id":"b","label":"","settings":{},"rows":[{"id":"r","settings":{},"cells":[{"id":"c1","settings":{},"atoms":[{"type":"video","id":"a"}]}]}]}}]}}`,
	} {
		res := s.Import([]byte(raw), ImportOptions{Mode: ImportReplace})
		if res.OK || len(res.Issues) == 0 {
			t.Fatalf("expected issues for %s", raw)
		}
	}

	if diff := cmp.Diff(before, s.Document()); diff != "" {
		t.Fatalf("failed import changed the document:\n%s", diff)
	}
	if mp.saves != saves {
		t.Fatalf("failed import wrote to storage")
	}
}

func TestAppendRespectsComponentLimit(t *testing.T) {
	s, _ := open(t, WithLimits(templateio.Limits{MaxBytes: templateio.DefaultMaxBytes, MaxComponents: 2}))
	s.InstallPreset(preset(t, "text"), edit.End)
	s.InstallPreset(preset(t, "text"), edit.End)
	raw, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	res := s.Import(raw, ImportOptions{Mode: ImportAppend})
	if res.OK {
		t.Fatal("expected the append to be refused")
	}
	if got := len(s.Document().Components); got != 2 {
		t.Fatalf("expected 2 components, got %d", got)
	}
}

func TestHydrateFromStore(t *testing.T) {
	mp := newMemoryPersistence()
	first, _ := open(t, WithPersistence(mp), WithTitle("Newsletter"))
	comp := first.InstallPreset(preset(t, "menu"), edit.End)
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, _ := open(t, WithPersistence(mp))
	doc := second.Document()
	if len(doc.Components) != 1 || doc.Components[0].ID != comp.ID {
		t.Fatalf("expected hydrated document to keep ids, got %+v", doc.Components)
	}
	if second.Title() != "Newsletter" {
		t.Fatalf("expected title to survive, got %q", second.Title())
	}
	if second.CanUndo() {
		t.Fatal("a fresh session has no history")
	}
}

func TestHydrateIgnoresInvalidData(t *testing.T) {
	mp := newMemoryPersistence()
	mp.template = []byte(`{"version":99}`)
	s, _ := open(t, WithPersistence(mp))
	if n := len(s.Document().Components); n != 0 {
		t.Fatalf("expected empty document, got %d components", n)
	}
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	mp := newMemoryPersistence()
	mp.fail = true
	s, _ := open(t, WithPersistence(mp))
	if s.InstallPreset(preset(t, "image"), edit.End) == nil {
		t.Fatal("edits must succeed when storage fails")
	}
}

func TestUndoRestoresSelection(t *testing.T) {
	s, clock := open(t)
	comp := s.InstallPreset(preset(t, "text"), edit.End)
	clock.elapse()

	cell := comp.Block.Rows[0].Cells[0]
	atomID := cell.Atoms[0].AtomID()
	if !s.SelectID(atomID) {
		t.Fatal("select atom")
	}
	if !s.RemoveSelected() {
		t.Fatal("remove selected")
	}
	sel := s.Selection()
	if sel.Level != model.LevelCell || sel.CellID != cell.ID {
		t.Fatalf("expected focus on the parent cell, got %+v", sel)
	}
	clock.elapse()

	if !s.Undo() {
		t.Fatal("undo")
	}
	if got := s.Selection(); got.AtomID != atomID {
		t.Fatalf("expected undo to restore the atom focus, got %+v", got)
	}
	if _, ok := s.Document().FindNode(atomID); !ok {
		t.Fatal("expected atom back")
	}
	if !s.Redo() {
		t.Fatal("redo")
	}
	if _, ok := s.Document().FindNode(atomID); ok {
		t.Fatal("expected atom gone again")
	}
}

func TestEditsCoalesce(t *testing.T) {
	s, clock := open(t)
	comp := s.InstallPreset(preset(t, "text"), edit.End)
	s.InsertRow(comp.Block.ID, edit.End)
	s.InsertRow(comp.Block.ID, edit.End)
	clock.elapse()

	if !s.Undo() {
		t.Fatal("undo")
	}
	if n := len(s.Document().Components); n != 0 {
		t.Fatalf("expected one step to undo everything, got %d components", n)
	}
	if s.Undo() {
		t.Fatal("expected nothing left to undo")
	}
}

func TestSelect(t *testing.T) {
	s, _ := open(t)
	comp := s.InstallPreset(preset(t, "text"), edit.End)
	row := comp.Block.Rows[0]

	if !s.Select(model.Selection{Level: model.LevelRow, RowID: row.ID}) {
		t.Fatal("select row")
	}
	got := s.Selection()
	if got.ComponentID != comp.ID || got.BlockID != comp.Block.ID {
		t.Fatalf("expected ancestors filled in, got %+v", got)
	}
	if s.Select(model.Selection{Level: model.LevelCell, CellID: row.ID}) {
		t.Fatal("level mismatch should be refused")
	}
	if s.Select(model.Selection{Level: model.LevelAtom, AtomID: "missing"}) {
		t.Fatal("unknown id should be refused")
	}
	if !s.Select(model.Selection{}) || !s.Selection().IsZero() {
		t.Fatal("zero selection clears")
	}
}

func TestClearCanvasDropsHistory(t *testing.T) {
	s, _ := open(t)
	s.InstallPreset(preset(t, "footer"), edit.End)
	s.ClearCanvas()
	if n := len(s.Document().Components); n != 0 {
		t.Fatalf("expected empty canvas, got %d", n)
	}
	if s.CanUndo() {
		t.Fatal("expected history to be reset")
	}
}

func TestLibrary(t *testing.T) {
	ctx := context.Background()
	if _, err := (&Session{}).ListNamed(ctx); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}

	mp := newMemoryPersistence()
	s, _ := open(t, WithPersistence(mp))
	s.InstallPreset(preset(t, "header"), edit.End)
	if err := s.SaveNamed("welcome"); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.ClearCanvas()

	res, err := s.OpenNamed("welcome", ImportOptions{})
	if err != nil || !res.OK {
		t.Fatalf("open named: %v %v", err, res.Issues)
	}
	if n := len(s.Document().Components); n != 1 {
		t.Fatalf("expected 1 component, got %d", n)
	}

	names, err := s.ListNamed(ctx)
	if err != nil || len(names) != 1 || names[0].Name != "welcome" {
		t.Fatalf("unexpected library %v %v", names, err)
	}
	if err := s.DeleteNamed("welcome"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.OpenNamed("welcome", ImportOptions{}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseImportMode(t *testing.T) {
	if m, err := ParseImportMode(""); err != nil || m != ImportReplace {
		t.Fatalf("default mode: %v %v", m, err)
	}
	if m, err := ParseImportMode("append"); err != nil || m != ImportAppend {
		t.Fatalf("append: %v %v", m, err)
	}
	if _, err := ParseImportMode("merge"); err == nil {
		t.Fatal("expected error")
	}
}

func TestListNamedLogsUnreadableEntries(t *testing.T) {
	var buf bytes.Buffer
	mp := newMemoryPersistence()
	s, _ := open(t, WithPersistence(mp), WithLogger(logging.NewWriter(&buf, false, false)))
	if err := s.SaveNamed("good"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mp.SaveNamed("broken", []byte("not json")); err != nil {
		t.Fatalf("save: %v", err)
	}

	names, err := s.ListNamed(context.Background())
	if err != nil || len(names) != 2 {
		t.Fatalf("unexpected library %v %v", names, err)
	}
	out := buf.String()
	if !strings.Contains(out, "unreadable library entry") || !strings.Contains(out, "broken") {
		t.Fatalf("expected a warning for the broken entry, got %q", out)
	}
	if strings.Contains(out, "good") {
		t.Fatalf("readable entries should not be logged, got %q", out)
	}
}
