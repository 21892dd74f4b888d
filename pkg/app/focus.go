package app

import (
	"tableflip.dev/postcard/pkg/edit"
	"tableflip.dev/postcard/pkg/model"
)

// Resolve returns the full selection for the node with id without focusing
// it.
func (s *Session) Resolve(id string) (model.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.doc.FindNode(id)
	if !ok {
		return model.Selection{}, false
	}
	return ref.Selection(), true
}

// siblings returns the index of the focused node among its siblings and
// how many siblings there are.
func (s *Session) siblings(sel model.Selection) (int, int, bool) {
	i, comp := s.doc.FindBlock(sel.BlockID)
	if comp == nil {
		return 0, 0, false
	}
	switch sel.Level {
	case model.LevelBlock:
		return i, len(s.doc.Components), true
	case model.LevelRow:
		ref, ok := comp.Block.FindRow(sel.RowID)
		if !ok {
			return 0, 0, false
		}
		return ref.Index, len(*ref.Owner), true
	case model.LevelCell:
		ref, ok := comp.Block.FindCell(sel.RowID, sel.CellID)
		if !ok {
			return 0, 0, false
		}
		return ref.Index, len(ref.Row.Cells), true
	case model.LevelAtom:
		ref, ok := comp.Block.FindAtom(sel.RowID, sel.CellID, sel.AtomID)
		if !ok {
			return 0, 0, false
		}
		return ref.Index, len(ref.Cell.Atoms), true
	}
	return 0, 0, false
}

// Position reports where the focused node sits among its siblings.
func (s *Session) Position() (index, count int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.siblings(s.sel)
}

// DuplicateSelected copies the focused node next to itself and focuses the
// copy. It returns the id of the copy, or "" when nothing is focused.
func (s *Session) DuplicateSelected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.sel
	var id string
	switch sel.Level {
	case model.LevelBlock:
		if c := edit.DuplicateComponent(s.doc, sel.ComponentID); c != nil {
			id = c.Block.ID
		}
	case model.LevelRow:
		if r := edit.DuplicateRow(s.doc, sel.BlockID, sel.RowID); r != nil {
			id = r.ID
		}
	case model.LevelCell:
		if c := edit.DuplicateCell(s.doc, sel.BlockID, sel.RowID, sel.CellID); c != nil {
			id = c.ID
		}
	case model.LevelAtom:
		if a := edit.DuplicateAtom(s.doc, sel.BlockID, sel.RowID, sel.CellID, sel.AtomID); a != nil {
			id = a.AtomID()
		}
	}
	if id == "" {
		return ""
	}
	s.changed()
	if ref, ok := s.doc.FindNode(id); ok {
		s.setSelection(ref.Selection())
	}
	return id
}

// MoveSelected moves the focused node to index to among its siblings.
func (s *Session) MoveSelected(to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.sel
	from, _, ok := s.siblings(sel)
	if !ok {
		return false
	}
	switch sel.Level {
	case model.LevelBlock:
		ok = edit.MoveComponent(s.doc, from, to)
	case model.LevelRow:
		_, comp := s.doc.FindBlock(sel.BlockID)
		ref, _ := comp.Block.FindRow(sel.RowID)
		if ref.TopLevel() {
			ok = edit.MoveRow(s.doc, sel.BlockID, from, to)
		} else {
			ok = edit.MoveRowInCell(s.doc, sel.BlockID, ref.CellRow.ID, ref.Cell.ID, from, to)
		}
	case model.LevelCell:
		ok = edit.MoveCell(s.doc, sel.BlockID, sel.RowID, from, to)
	case model.LevelAtom:
		ok = edit.MoveAtom(s.doc, sel.BlockID, sel.RowID, sel.CellID, from, to)
	default:
		ok = false
	}
	return s.moved(ok)
}

// MoveSelectedBy shifts the focused node by delta places.
func (s *Session) MoveSelectedBy(delta int) bool {
	i, n, ok := s.Position()
	if !ok || i+delta < 0 || i+delta >= n {
		return false
	}
	return s.MoveSelected(i + delta)
}
