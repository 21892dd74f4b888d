package model

// RowRef locates a row and the list that owns it. Cell and CellRow are set
// when the row is nested inside a cell.
type RowRef struct {
	Row     *Row
	Index   int
	Owner   *[]*Row
	Cell    *Cell
	CellRow *Row
}

// TopLevel reports whether the row belongs directly to the block.
func (r RowRef) TopLevel() bool {
	return r.Cell == nil
}

// CellRef locates a cell inside its row.
type CellRef struct {
	Cell  *Cell
	Index int
	Row   *Row
}

// AtomRef locates an atom inside its cell.
type AtomRef struct {
	Atom  Atom
	Index int
	Cell  *Cell
	Row   *Row
}

// FindRow searches the block depth-first, through nested rows, for rowID.
func (b *Block) FindRow(rowID string) (RowRef, bool) {
	if b == nil || rowID == "" {
		return RowRef{}, false
	}
	return findRow(&b.Rows, nil, nil, rowID)
}

func findRow(rows *[]*Row, cell *Cell, cellRow *Row, rowID string) (RowRef, bool) {
	for i, r := range *rows {
		if r.ID == rowID {
			return RowRef{Row: r, Index: i, Owner: rows, Cell: cell, CellRow: cellRow}, true
		}
		for _, c := range r.Cells {
			if ref, ok := findRow(&c.Rows, c, r, rowID); ok {
				return ref, true
			}
		}
	}
	return RowRef{}, false
}

// FindCell resolves rowID then cellID among that row's cells.
func (b *Block) FindCell(rowID, cellID string) (CellRef, bool) {
	ref, ok := b.FindRow(rowID)
	if !ok {
		return CellRef{}, false
	}
	for i, c := range ref.Row.Cells {
		if c.ID == cellID {
			return CellRef{Cell: c, Index: i, Row: ref.Row}, true
		}
	}
	return CellRef{}, false
}

// FindAtom resolves rowID, cellID, then atomID.
func (b *Block) FindAtom(rowID, cellID, atomID string) (AtomRef, bool) {
	ref, ok := b.FindCell(rowID, cellID)
	if !ok {
		return AtomRef{}, false
	}
	for i, a := range ref.Cell.Atoms {
		if a.AtomID() == atomID {
			return AtomRef{Atom: a, Index: i, Cell: ref.Cell, Row: ref.Row}, true
		}
	}
	return AtomRef{}, false
}

// NodeRef is the result of a document-wide id search.
type NodeRef struct {
	Level     Level
	Component *CanvasBlockInstance
	Block     *Block
	Row       *Row
	Cell      *Cell
	Atom      Atom
}

// Selection returns a selection pointing at the node.
func (n NodeRef) Selection() Selection {
	s := Selection{Level: n.Level}
	if n.Component != nil {
		s.ComponentID = n.Component.ID
	}
	if n.Block != nil {
		s.BlockID = n.Block.ID
	}
	if n.Row != nil {
		s.RowID = n.Row.ID
	}
	if n.Cell != nil {
		s.CellID = n.Cell.ID
	}
	if n.Atom != nil {
		s.AtomID = n.Atom.AtomID()
	}
	return s
}

// FindNode searches every component for a block, row, cell or atom with id.
func (d *Document) FindNode(id string) (NodeRef, bool) {
	if d == nil || id == "" {
		return NodeRef{}, false
	}
	for _, comp := range d.Components {
		b := comp.Block
		if b == nil {
			continue
		}
		if b.ID == id {
			return NodeRef{Level: LevelBlock, Component: comp, Block: b}, true
		}
		if ref, ok := findInRows(b.Rows, id); ok {
			ref.Component = comp
			ref.Block = b
			return ref, true
		}
	}
	return NodeRef{}, false
}

func findInRows(rows []*Row, id string) (NodeRef, bool) {
	for _, r := range rows {
		if r.ID == id {
			return NodeRef{Level: LevelRow, Row: r}, true
		}
		for _, c := range r.Cells {
			if c.ID == id {
				return NodeRef{Level: LevelCell, Row: r, Cell: c}, true
			}
			for _, a := range c.Atoms {
				if a.AtomID() == id {
					return NodeRef{Level: LevelAtom, Row: r, Cell: c, Atom: a}, true
				}
			}
			if ref, ok := findInRows(c.Rows, id); ok {
				return ref, true
			}
		}
	}
	return NodeRef{}, false
}

// FindComponent returns the placement with id and its index, or -1.
func (d *Document) FindComponent(id string) (int, *CanvasBlockInstance) {
	for i, c := range d.Components {
		if c.ID == id {
			return i, c
		}
	}
	return -1, nil
}

// FindBlock returns the placement whose block has blockID and its index, or -1.
func (d *Document) FindBlock(blockID string) (int, *CanvasBlockInstance) {
	for i, c := range d.Components {
		if c.Block != nil && c.Block.ID == blockID {
			return i, c
		}
	}
	return -1, nil
}
