package edit

import (
	"tableflip.dev/postcard/pkg/model"
)

// InsertRow adds a default row to the top level of the block.
func InsertRow(doc *model.Document, blockID string, at int) *model.Row {
	comp, ok := findBlock(doc, blockID)
	if !ok {
		return nil
	}
	r := model.NewRow()
	comp.Block.Rows = insertAt(comp.Block.Rows, at, r)
	return r
}

// InsertRowInCell adds a default row nested inside a cell.
func InsertRowInCell(doc *model.Document, blockID, rowID, cellID string, at int) *model.Row {
	_, ref, ok := findCell(doc, blockID, rowID, cellID)
	if !ok {
		return nil
	}
	r := model.NewRow()
	ref.Cell.Rows = insertAt(ref.Cell.Rows, at, r)
	return r
}

// InsertCell adds a default cell to a row.
func InsertCell(doc *model.Document, blockID, rowID string, at int) *model.Cell {
	_, ref, ok := findRow(doc, blockID, rowID)
	if !ok {
		return nil
	}
	c := model.NewCell()
	ref.Row.Cells = insertAt(ref.Row.Cells, at, c)
	return c
}

// InsertAtom adds a default atom of type t to a cell.
func InsertAtom(doc *model.Document, blockID, rowID, cellID string, t model.AtomType, at int) model.Atom {
	_, ref, ok := findCell(doc, blockID, rowID, cellID)
	if !ok {
		return nil
	}
	a := model.NewAtom(t)
	if a == nil {
		return nil
	}
	ref.Cell.Atoms = insertAt(ref.Cell.Atoms, at, a)
	return a
}

// InsertComponent places inst on the canvas.
func InsertComponent(doc *model.Document, inst *model.CanvasBlockInstance, at int) *model.CanvasBlockInstance {
	if doc == nil || inst == nil || inst.Block == nil {
		return nil
	}
	doc.Components = insertAt(doc.Components, at, inst)
	return inst
}
