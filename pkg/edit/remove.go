package edit

import (
	"tableflip.dev/postcard/pkg/model"
)

// Removal describes a removed subtree.
type Removal struct {
	// IDs lists every id that left the document.
	IDs []string
	// Parent points at the node that owned the removed one.
	Parent model.Selection
}

// Covers reports whether sel points into the removed subtree.
func (r *Removal) Covers(sel model.Selection) bool {
	if r == nil || sel.IsZero() {
		return false
	}
	for _, id := range r.IDs {
		if id == "" {
			continue
		}
		switch id {
		case sel.ComponentID, sel.BlockID, sel.RowID, sel.CellID, sel.AtomID:
			return true
		}
	}
	return false
}

// Repair returns sel promoted to the removed node's parent when it pointed
// into the removed subtree, or sel unchanged.
func (r *Removal) Repair(sel model.Selection) model.Selection {
	if r.Covers(sel) {
		return r.Parent
	}
	return sel
}

func blockSelection(comp *model.CanvasBlockInstance) model.Selection {
	return model.Selection{Level: model.LevelBlock, ComponentID: comp.ID, BlockID: comp.Block.ID}
}

func rowSelection(comp *model.CanvasBlockInstance, row *model.Row) model.Selection {
	s := blockSelection(comp)
	s.Level = model.LevelRow
	s.RowID = row.ID
	return s
}

func cellSelection(comp *model.CanvasBlockInstance, row *model.Row, cell *model.Cell) model.Selection {
	s := rowSelection(comp, row)
	s.Level = model.LevelCell
	s.CellID = cell.ID
	return s
}

// RemoveRow removes a row, top-level or nested. A block keeps at least one
// top-level row; a cell may lose all of its nested rows.
func RemoveRow(doc *model.Document, blockID, rowID string) *Removal {
	comp, ref, ok := findRow(doc, blockID, rowID)
	if !ok {
		return nil
	}
	parent := blockSelection(comp)
	if ref.TopLevel() {
		if len(*ref.Owner) <= 1 {
			return nil
		}
	} else {
		parent = cellSelection(comp, ref.CellRow, ref.Cell)
	}
	*ref.Owner = removeAt(*ref.Owner, ref.Index)
	return &Removal{IDs: ref.Row.IDs(), Parent: parent}
}

// RemoveCell removes a cell unless it is the last one in its row.
func RemoveCell(doc *model.Document, blockID, rowID, cellID string) *Removal {
	comp, ref, ok := findCell(doc, blockID, rowID, cellID)
	if !ok || len(ref.Row.Cells) <= 1 {
		return nil
	}
	ref.Row.Cells = removeAt(ref.Row.Cells, ref.Index)
	return &Removal{IDs: ref.Cell.IDs(), Parent: rowSelection(comp, ref.Row)}
}

// RemoveAtom removes an atom from its cell.
func RemoveAtom(doc *model.Document, blockID, rowID, cellID, atomID string) *Removal {
	comp, ok := findBlock(doc, blockID)
	if !ok {
		return nil
	}
	ref, ok := comp.Block.FindAtom(rowID, cellID, atomID)
	if !ok {
		return nil
	}
	ref.Cell.Atoms = removeAt(ref.Cell.Atoms, ref.Index)
	return &Removal{IDs: []string{atomID}, Parent: cellSelection(comp, ref.Row, ref.Cell)}
}

// RemoveComponent takes a placement off the canvas. The parent selection is
// empty.
func RemoveComponent(doc *model.Document, componentID string) *Removal {
	if doc == nil {
		return nil
	}
	i, comp := doc.FindComponent(componentID)
	if i < 0 {
		return nil
	}
	doc.Components = removeAt(doc.Components, i)
	return &Removal{IDs: comp.IDs()}
}
