package edit

import (
	"tableflip.dev/postcard/pkg/model"
)

// DuplicateRow clones a row, top-level or nested, with fresh ids and places
// the clone right after it.
func DuplicateRow(doc *model.Document, blockID, rowID string) *model.Row {
	_, ref, ok := findRow(doc, blockID, rowID)
	if !ok {
		return nil
	}
	clone := ref.Row.Clone()
	clone.RegenerateIDs()
	*ref.Owner = insertAt(*ref.Owner, ref.Index+1, clone)
	return clone
}

// DuplicateCell clones a cell with fresh ids and places the clone after it.
func DuplicateCell(doc *model.Document, blockID, rowID, cellID string) *model.Cell {
	_, ref, ok := findCell(doc, blockID, rowID, cellID)
	if !ok {
		return nil
	}
	clone := ref.Cell.Clone()
	clone.RegenerateIDs()
	ref.Row.Cells = insertAt(ref.Row.Cells, ref.Index+1, clone)
	return clone
}

// DuplicateAtom clones an atom with a fresh id and places the clone after it.
func DuplicateAtom(doc *model.Document, blockID, rowID, cellID, atomID string) model.Atom {
	comp, ok := findBlock(doc, blockID)
	if !ok {
		return nil
	}
	ref, ok := comp.Block.FindAtom(rowID, cellID, atomID)
	if !ok {
		return nil
	}
	clone := ref.Atom.CloneAtom()
	model.RegenerateAtomID(clone)
	ref.Cell.Atoms = insertAt(ref.Cell.Atoms, ref.Index+1, clone)
	return clone
}

// DuplicateComponent clones a placement, its block included, with fresh ids.
func DuplicateComponent(doc *model.Document, componentID string) *model.CanvasBlockInstance {
	if doc == nil {
		return nil
	}
	i, comp := doc.FindComponent(componentID)
	if i < 0 {
		return nil
	}
	clone := comp.Clone()
	clone.RegenerateIDs()
	doc.Components = insertAt(doc.Components, i+1, clone)
	return clone
}
