package edit

import (
	"tableflip.dev/postcard/pkg/model"
)

// MoveRow reorders the top-level rows of a block.
func MoveRow(doc *model.Document, blockID string, from, to int) bool {
	comp, ok := findBlock(doc, blockID)
	if !ok {
		return false
	}
	return moveItem(comp.Block.Rows, from, to)
}

// MoveRowInCell reorders the rows nested inside a cell.
func MoveRowInCell(doc *model.Document, blockID, rowID, cellID string, from, to int) bool {
	_, ref, ok := findCell(doc, blockID, rowID, cellID)
	if !ok {
		return false
	}
	return moveItem(ref.Cell.Rows, from, to)
}

// MoveCell reorders the cells of a row.
func MoveCell(doc *model.Document, blockID, rowID string, from, to int) bool {
	_, ref, ok := findRow(doc, blockID, rowID)
	if !ok {
		return false
	}
	return moveItem(ref.Row.Cells, from, to)
}

// MoveAtom reorders the atoms of a cell.
func MoveAtom(doc *model.Document, blockID, rowID, cellID string, from, to int) bool {
	_, ref, ok := findCell(doc, blockID, rowID, cellID)
	if !ok {
		return false
	}
	return moveItem(ref.Cell.Atoms, from, to)
}

// MoveComponent reorders the canvas.
func MoveComponent(doc *model.Document, from, to int) bool {
	if doc == nil {
		return false
	}
	return moveItem(doc.Components, from, to)
}
