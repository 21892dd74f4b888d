package edit

import (
	"reflect"
	"testing"

	"tableflip.dev/postcard/pkg/model"
)

// fixture returns a document with one block holding a single row and cell,
// the cell already carrying two atoms.
func fixture(t *testing.T) (*model.Document, *model.Block, *model.Row, *model.Cell) {
	t.Helper()
	doc := model.NewDocument()
	b := model.NewBlock("Content")
	doc.Components = append(doc.Components, model.NewInstance(b))
	row := b.Rows[0]
	cell := row.Cells[0]
	cell.Atoms = append(cell.Atoms, model.NewAtom(model.AtomText), model.NewAtom(model.AtomButton))
	return doc, b, row, cell
}

func TestInsertAtomAppendsDivider(t *testing.T) {
	doc, b, row, cell := fixture(t)

	a := InsertAtom(doc, b.ID, row.ID, cell.ID, model.AtomDivider, End)
	if a == nil {
		t.Fatalf("expected atom")
	}
	if len(cell.Atoms) != 3 {
		t.Fatalf("expected 3 atoms, got %d", len(cell.Atoms))
	}
	if cell.Atoms[2] != a || a.Type() != model.AtomDivider {
		t.Fatalf("expected divider last, got %v", cell.Atoms[2].Type())
	}
}

func TestInsertAtIndex(t *testing.T) {
	doc, b, row, cell := fixture(t)

	a := InsertAtom(doc, b.ID, row.ID, cell.ID, model.AtomImage, 0)
	if cell.Atoms[0] != a {
		t.Fatalf("expected image first")
	}
	c := InsertCell(doc, b.ID, row.ID, 1)
	if len(row.Cells) != 2 || row.Cells[1] != c {
		t.Fatalf("expected new cell at index 1")
	}
	r := InsertRow(doc, b.ID, 99)
	if b.Rows[len(b.Rows)-1] != r {
		t.Fatalf("out of range index should append")
	}
}

func TestInsertUnresolved(t *testing.T) {
	doc, b, row, cell := fixture(t)
	before := doc.Clone()

	if InsertRow(doc, "missing", End) != nil {
		t.Errorf("InsertRow on missing block")
	}
	if InsertCell(doc, b.ID, "missing", End) != nil {
		t.Errorf("InsertCell on missing row")
	}
	if InsertAtom(doc, b.ID, row.ID, "missing", model.AtomText, End) != nil {
		t.Errorf("InsertAtom on missing cell")
	}
	if InsertAtom(doc, b.ID, row.ID, cell.ID, "video", End) != nil {
		t.Errorf("InsertAtom with unknown type")
	}
	if InsertRowInCell(doc, b.ID, row.ID, "missing", End) != nil {
		t.Errorf("InsertRowInCell on missing cell")
	}
	if InsertComponent(doc, nil, End) != nil {
		t.Errorf("InsertComponent with nil instance")
	}
	if !reflect.DeepEqual(before, doc) {
		t.Fatalf("document changed")
	}
}

func TestNestedRows(t *testing.T) {
	doc, b, row, cell := fixture(t)

	nested := InsertRowInCell(doc, b.ID, row.ID, cell.ID, End)
	if nested == nil || len(cell.Rows) != 1 {
		t.Fatalf("expected nested row")
	}
	inner := nested.Cells[0]
	a := InsertAtom(doc, b.ID, nested.ID, inner.ID, model.AtomText, End)
	if a == nil {
		t.Fatalf("expected atom in nested cell")
	}

	dup := DuplicateRow(doc, b.ID, nested.ID)
	if dup == nil || len(cell.Rows) != 2 || cell.Rows[1] != dup {
		t.Fatalf("expected nested duplicate after source")
	}
	if !MoveRowInCell(doc, b.ID, row.ID, cell.ID, 0, 1) || cell.Rows[0] != dup {
		t.Fatalf("expected nested rows swapped")
	}

	rm := RemoveRow(doc, b.ID, nested.ID)
	if rm == nil {
		t.Fatalf("nested rows may be removed")
	}
	if rm.Parent.Level != model.LevelCell || rm.Parent.CellID != cell.ID || rm.Parent.RowID != row.ID {
		t.Fatalf("unexpected parent selection: %+v", rm.Parent)
	}
	if RemoveRow(doc, b.ID, dup.ID) == nil || len(cell.Rows) != 0 {
		t.Fatalf("a cell may lose all nested rows")
	}
}

func TestMinimumCardinality(t *testing.T) {
	doc, b, row, cell := fixture(t)
	before := doc.Clone()

	if RemoveRow(doc, b.ID, row.ID) != nil {
		t.Errorf("removed the last row")
	}
	if RemoveCell(doc, b.ID, row.ID, cell.ID) != nil {
		t.Errorf("removed the last cell")
	}
	if !reflect.DeepEqual(before, doc) {
		t.Fatalf("document changed")
	}
}

func TestRemoveReportsSubtree(t *testing.T) {
	doc, b, row, cell := fixture(t)
	second := InsertCell(doc, b.ID, row.ID, End)
	atom := InsertAtom(doc, b.ID, row.ID, second.ID, model.AtomText, End)

	sel := model.Selection{Level: model.LevelAtom, BlockID: b.ID, RowID: row.ID, CellID: second.ID, AtomID: atom.AtomID()}
	rm := RemoveCell(doc, b.ID, row.ID, second.ID)
	if rm == nil {
		t.Fatalf("expected removal")
	}
	if len(rm.IDs) != 2 {
		t.Fatalf("expected cell and atom ids, got %v", rm.IDs)
	}
	got := rm.Repair(sel)
	if got.Level != model.LevelRow || got.RowID != row.ID || got.ComponentID != doc.Components[0].ID {
		t.Fatalf("unexpected repaired selection: %+v", got)
	}

	other := model.Selection{Level: model.LevelCell, BlockID: b.ID, RowID: row.ID, CellID: cell.ID}
	if rm.Repair(other) != other {
		t.Fatalf("unrelated selection should be kept")
	}
}

func TestRemoveAtomAndComponent(t *testing.T) {
	doc, b, row, cell := fixture(t)
	id := cell.Atoms[0].AtomID()

	rm := RemoveAtom(doc, b.ID, row.ID, cell.ID, id)
	if rm == nil || len(cell.Atoms) != 1 {
		t.Fatalf("expected atom removed")
	}
	if rm.Parent.Level != model.LevelCell || rm.Parent.CellID != cell.ID {
		t.Fatalf("unexpected parent: %+v", rm.Parent)
	}
	if RemoveAtom(doc, b.ID, row.ID, cell.ID, id) != nil {
		t.Fatalf("second removal should be a no-op")
	}

	rm = RemoveComponent(doc, doc.Components[0].ID)
	if rm == nil || len(doc.Components) != 0 {
		t.Fatalf("expected component removed")
	}
	if !rm.Parent.IsZero() {
		t.Fatalf("expected empty parent")
	}
}

func TestDuplicateRegeneratesIDs(t *testing.T) {
	doc, b, row, cell := fixture(t)
	InsertRowInCell(doc, b.ID, row.ID, cell.ID, End)

	tests := map[string]func() []string{
		"component": func() []string { return DuplicateComponent(doc, doc.Components[0].ID).IDs() },
		"row":       func() []string { return DuplicateRow(doc, b.ID, row.ID).IDs() },
		"cell":      func() []string { return DuplicateCell(doc, b.ID, row.ID, cell.ID).IDs() },
		"atom": func() []string {
			return []string{DuplicateAtom(doc, b.ID, row.ID, cell.ID, cell.Atoms[0].AtomID()).AtomID()}
		},
	}
	for name, dup := range tests {
		t.Run(name, func(t *testing.T) {
			ids := dup()
			seen := map[string]int{}
			for _, id := range doc.IDs() {
				seen[id]++
			}
			for _, id := range ids {
				if seen[id] != 1 {
					t.Errorf("id %s appears %d times", id, seen[id])
				}
			}
		})
	}
}

func TestDuplicatePlacesCloneAfterSource(t *testing.T) {
	doc, b, row, cell := fixture(t)
	src := cell.Atoms[0]

	dup := DuplicateAtom(doc, b.ID, row.ID, cell.ID, src.AtomID())
	if cell.Atoms[1] != dup {
		t.Fatalf("expected clone right after source")
	}
	if dup.(*model.TextAtom).Value != src.(*model.TextAtom).Value {
		t.Fatalf("clone lost content")
	}
	if DuplicateCell(doc, b.ID, row.ID, "missing") != nil {
		t.Fatalf("expected nil for missing cell")
	}
}

func TestMove(t *testing.T) {
	doc, b, row, cell := fixture(t)
	first, second := cell.Atoms[0], cell.Atoms[1]

	if MoveAtom(doc, b.ID, row.ID, cell.ID, 0, 0) {
		t.Errorf("equal indices should be rejected")
	}
	if MoveAtom(doc, b.ID, row.ID, cell.ID, 0, 2) {
		t.Errorf("out of range should be rejected")
	}
	if !MoveAtom(doc, b.ID, row.ID, cell.ID, 1, 0) {
		t.Fatalf("expected move")
	}
	if cell.Atoms[0] != second || cell.Atoms[1] != first {
		t.Fatalf("atoms not swapped")
	}

	InsertRow(doc, b.ID, End)
	third := InsertRow(doc, b.ID, End)
	if !MoveRow(doc, b.ID, 2, 0) || b.Rows[0] != third || b.Rows[1] != row {
		t.Fatalf("expected rows shifted")
	}

	c := InsertCell(doc, b.ID, row.ID, End)
	if !MoveCell(doc, b.ID, row.ID, 1, 0) || row.Cells[0] != c {
		t.Fatalf("expected cells swapped")
	}

	doc.Components = append(doc.Components, model.NewInstance(model.NewBlock("Footer")))
	if !MoveComponent(doc, 0, 1) || doc.Components[1].Block != b {
		t.Fatalf("expected components swapped")
	}
	if MoveComponent(doc, -1, 0) {
		t.Fatalf("negative index should be rejected")
	}
}

func TestMoveItemShifts(t *testing.T) {
	list := []string{"a", "b", "c", "d"}
	moveItem(list, 0, 3)
	if !reflect.DeepEqual(list, []string{"b", "c", "d", "a"}) {
		t.Fatalf("forward move: %v", list)
	}
	moveItem(list, 3, 1)
	if !reflect.DeepEqual(list, []string{"b", "a", "c", "d"}) {
		t.Fatalf("backward move: %v", list)
	}
}
