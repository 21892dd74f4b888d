package app

import (
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/edit"
	"tableflip.dev/postcard/pkg/model"
)

// Tree edits. Each one applies the matching pkg/edit operation to the live
// document and, when it changed something, records it with history and
// storage. Results are copies; the live tree never leaves the session.

// InsertRow adds a row to a block at index at (edit.End appends).
func (s *Session) InsertRow(blockID string, at int) *model.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := edit.InsertRow(s.doc, blockID, at)
	if r == nil {
		return nil
	}
	s.changed()
	return r.Clone()
}

// InsertRowInCell adds a nested row inside a cell.
func (s *Session) InsertRowInCell(blockID, rowID, cellID string, at int) *model.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := edit.InsertRowInCell(s.doc, blockID, rowID, cellID, at)
	if r == nil {
		return nil
	}
	s.changed()
	return r.Clone()
}

// InsertCell adds a cell to a row.
func (s *Session) InsertCell(blockID, rowID string, at int) *model.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := edit.InsertCell(s.doc, blockID, rowID, at)
	if c == nil {
		return nil
	}
	s.changed()
	return c.Clone()
}

// InsertAtom adds a default atom of type t to a cell.
func (s *Session) InsertAtom(blockID, rowID, cellID string, t model.AtomType, at int) model.Atom {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := edit.InsertAtom(s.doc, blockID, rowID, cellID, t, at)
	if a == nil {
		return nil
	}
	s.changed()
	return a.CloneAtom()
}

// InsertComponent places a copy of inst on the canvas with fresh ids.
func (s *Session) InsertComponent(inst *model.CanvasBlockInstance, at int) *model.CanvasBlockInstance {
	if inst == nil || inst.Block == nil {
		return nil
	}
	inst = inst.Clone()
	inst.RegenerateIDs()

	s.mu.Lock()
	defer s.mu.Unlock()
	out := edit.InsertComponent(s.doc, inst, at)
	if out == nil {
		return nil
	}
	s.changed()
	return out.Clone()
}

// InstallPreset instantiates a catalog preset onto the canvas.
func (s *Session) InstallPreset(p catalog.BlockPreset, at int) *model.CanvasBlockInstance {
	if p.Instance == nil {
		return nil
	}
	return s.InsertComponent(p.Instantiate(), at)
}

func (s *Session) removed(rm *edit.Removal) bool {
	if rm == nil {
		return false
	}
	s.changed()
	s.setSelection(rm.Repair(s.sel))
	return true
}

// RemoveRow removes a row. The last top-level row of a block stays.
func (s *Session) RemoveRow(blockID, rowID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removed(edit.RemoveRow(s.doc, blockID, rowID))
}

// RemoveCell removes a cell. The last cell of a row stays.
func (s *Session) RemoveCell(blockID, rowID, cellID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removed(edit.RemoveCell(s.doc, blockID, rowID, cellID))
}

// RemoveAtom removes an atom.
func (s *Session) RemoveAtom(blockID, rowID, cellID, atomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removed(edit.RemoveAtom(s.doc, blockID, rowID, cellID, atomID))
}

// RemoveComponent takes a block off the canvas.
func (s *Session) RemoveComponent(componentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removed(edit.RemoveComponent(s.doc, componentID))
}

// RemoveSelected removes whatever node is focused.
func (s *Session) RemoveSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.sel
	switch sel.Level {
	case model.LevelBlock:
		return s.removed(edit.RemoveComponent(s.doc, sel.ComponentID))
	case model.LevelRow:
		return s.removed(edit.RemoveRow(s.doc, sel.BlockID, sel.RowID))
	case model.LevelCell:
		return s.removed(edit.RemoveCell(s.doc, sel.BlockID, sel.RowID, sel.CellID))
	case model.LevelAtom:
		return s.removed(edit.RemoveAtom(s.doc, sel.BlockID, sel.RowID, sel.CellID, sel.AtomID))
	}
	return false
}

// DuplicateRow copies a row next to itself.
func (s *Session) DuplicateRow(blockID, rowID string) *model.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := edit.DuplicateRow(s.doc, blockID, rowID)
	if r == nil {
		return nil
	}
	s.changed()
	return r.Clone()
}

// DuplicateCell copies a cell next to itself.
func (s *Session) DuplicateCell(blockID, rowID, cellID string) *model.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := edit.DuplicateCell(s.doc, blockID, rowID, cellID)
	if c == nil {
		return nil
	}
	s.changed()
	return c.Clone()
}

// DuplicateAtom copies an atom next to itself.
func (s *Session) DuplicateAtom(blockID, rowID, cellID, atomID string) model.Atom {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := edit.DuplicateAtom(s.doc, blockID, rowID, cellID, atomID)
	if a == nil {
		return nil
	}
	s.changed()
	return a.CloneAtom()
}

// DuplicateComponent copies a block next to itself.
func (s *Session) DuplicateComponent(componentID string) *model.CanvasBlockInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := edit.DuplicateComponent(s.doc, componentID)
	if c == nil {
		return nil
	}
	s.changed()
	return c.Clone()
}

func (s *Session) moved(ok bool) bool {
	if ok {
		s.changed()
	}
	return ok
}

// MoveRow reorders the rows of a block.
func (s *Session) MoveRow(blockID string, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moved(edit.MoveRow(s.doc, blockID, from, to))
}

// MoveRowInCell reorders the nested rows of a cell.
func (s *Session) MoveRowInCell(blockID, rowID, cellID string, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moved(edit.MoveRowInCell(s.doc, blockID, rowID, cellID, from, to))
}

// MoveCell reorders the cells of a row.
func (s *Session) MoveCell(blockID, rowID string, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moved(edit.MoveCell(s.doc, blockID, rowID, from, to))
}

// MoveAtom reorders the atoms of a cell.
func (s *Session) MoveAtom(blockID, rowID, cellID string, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moved(edit.MoveAtom(s.doc, blockID, rowID, cellID, from, to))
}

// MoveComponent reorders the canvas.
func (s *Session) MoveComponent(from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moved(edit.MoveComponent(s.doc, from, to))
}

// UpdateSetting writes one setting. It reports false, changing nothing, when
// the key does not resolve or the value cannot be coerced.
func (s *Session) UpdateSetting(key edit.SettingKey, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moved(edit.UpdateSetting(s.doc, key, value))
}
