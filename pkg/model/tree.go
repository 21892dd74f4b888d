package model

import (
	"tableflip.dev/postcard/pkg/style"
)

// BlockSettings style a whole block.
type BlockSettings struct {
	Spacing         style.Spacing          `json:"spacing"`
	BackgroundColor string                 `json:"backgroundColor"`
	BackgroundImage *style.BackgroundImage `json:"backgroundImage,omitempty"`
}

// RowSettings style a row and the gap between its cells.
type RowSettings struct {
	Spacing         style.Spacing          `json:"spacing"`
	BackgroundColor string                 `json:"backgroundColor"`
	BackgroundImage *style.BackgroundImage `json:"backgroundImage,omitempty"`
	Height          *float64               `json:"height,omitempty"`
	Gap             float64                `json:"gap"`
}

// CellSettings style a cell and position its content.
type CellSettings struct {
	Spacing         style.Spacing          `json:"spacing"`
	BackgroundColor string                 `json:"backgroundColor"`
	BackgroundImage *style.BackgroundImage `json:"backgroundImage,omitempty"`
	Link            string                 `json:"link,omitempty"`
	VerticalAlign   style.VerticalAlign    `json:"verticalAlign"`
	HorizontalAlign style.HorizontalAlign  `json:"horizontalAlign,omitempty"`
	BorderRadius    *float64               `json:"borderRadius,omitempty"`
	Width           *float64               `json:"width,omitempty"`
	Height          *float64               `json:"height,omitempty"`
}

// Cell is a layout container holding atoms and, optionally, nested rows.
type Cell struct {
	ID       string       `json:"id"`
	Settings CellSettings `json:"settings"`
	Atoms    Atoms        `json:"atoms"`
	Rows     []*Row       `json:"rows"`
}

// Row is a horizontal run of cells.
type Row struct {
	ID       string      `json:"id"`
	Settings RowSettings `json:"settings"`
	Cells    []*Cell     `json:"cells"`
}

// Block is the top-level draggable unit of the canvas.
type Block struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Settings BlockSettings `json:"settings"`
	Rows     []*Row        `json:"rows"`
}

// CanvasBlockInstance places a block on the canvas. Its ID identifies the
// placement and is distinct from Block.ID.
type CanvasBlockInstance struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
	Block   *Block `json:"block"`
}

// NewCell returns an empty cell with a fresh id.
func NewCell() *Cell {
	return &Cell{
		ID: NewID(),
		Settings: CellSettings{
			Spacing:       style.NewSpacing(style.Insets{}, style.Uniform(8)),
			VerticalAlign: style.AlignTop,
		},
		Atoms: Atoms{},
		Rows:  []*Row{},
	}
}

// NewRow returns a row holding one empty cell.
func NewRow() *Row {
	return &Row{
		ID: NewID(),
		Settings: RowSettings{
			Spacing: style.NewSpacing(style.Insets{}, style.Insets{}),
		},
		Cells: []*Cell{NewCell()},
	}
}

// NewBlock returns a block holding one row.
func NewBlock(label string) *Block {
	return &Block{
		ID:    NewID(),
		Label: label,
		Settings: BlockSettings{
			Spacing:         style.NewSpacing(style.Insets{}, style.Symmetric(16, 24)),
			BackgroundColor: "#ffffff",
		},
		Rows: []*Row{NewRow()},
	}
}

// NewInstance wraps b in a fresh canvas placement.
func NewInstance(b *Block) *CanvasBlockInstance {
	return &CanvasBlockInstance{ID: NewID(), Version: Version, Block: b}
}

func (s BlockSettings) Clone() BlockSettings {
	s.Spacing = s.Spacing.Clone()
	s.BackgroundImage = s.BackgroundImage.Clone()
	return s
}

func (s RowSettings) Clone() RowSettings {
	s.Spacing = s.Spacing.Clone()
	s.BackgroundImage = s.BackgroundImage.Clone()
	s.Height = cloneFloat(s.Height)
	return s
}

func (s CellSettings) Clone() CellSettings {
	s.Spacing = s.Spacing.Clone()
	s.BackgroundImage = s.BackgroundImage.Clone()
	s.BorderRadius = cloneFloat(s.BorderRadius)
	s.Width = cloneFloat(s.Width)
	s.Height = cloneFloat(s.Height)
	return s
}

// Clone deep-copies the cell, keeping ids.
func (c *Cell) Clone() *Cell {
	if c == nil {
		return nil
	}
	return &Cell{
		ID:       c.ID,
		Settings: c.Settings.Clone(),
		Atoms:    c.Atoms.Clone(),
		Rows:     cloneRows(c.Rows),
	}
}

// Clone deep-copies the row, keeping ids.
func (r *Row) Clone() *Row {
	if r == nil {
		return nil
	}
	cells := make([]*Cell, 0, len(r.Cells))
	for _, c := range r.Cells {
		if c != nil {
			cells = append(cells, c.Clone())
		}
	}
	return &Row{ID: r.ID, Settings: r.Settings.Clone(), Cells: cells}
}

// Clone deep-copies the block, keeping ids.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	return &Block{
		ID:       b.ID,
		Label:    b.Label,
		Settings: b.Settings.Clone(),
		Rows:     cloneRows(b.Rows),
	}
}

// Clone deep-copies the instance, keeping ids.
func (i *CanvasBlockInstance) Clone() *CanvasBlockInstance {
	if i == nil {
		return nil
	}
	return &CanvasBlockInstance{ID: i.ID, Version: i.Version, Block: i.Block.Clone()}
}

func cloneRows(rows []*Row) []*Row {
	out := make([]*Row, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			out = append(out, r.Clone())
		}
	}
	return out
}

// CloneComponents deep-copies a component list, keeping ids.
func CloneComponents(list []*CanvasBlockInstance) []*CanvasBlockInstance {
	out := make([]*CanvasBlockInstance, 0, len(list))
	for _, c := range list {
		if c != nil {
			out = append(out, c.Clone())
		}
	}
	return out
}

// RegenerateAtomID assigns a fresh id to a.
func RegenerateAtomID(a Atom) {
	a.SetAtomID(NewID())
}

// RegenerateIDs assigns fresh ids to the cell and everything below it.
func (c *Cell) RegenerateIDs() {
	c.ID = NewID()
	for _, a := range c.Atoms {
		RegenerateAtomID(a)
	}
	for _, r := range c.Rows {
		r.RegenerateIDs()
	}
}

// RegenerateIDs assigns fresh ids to the row and everything below it.
func (r *Row) RegenerateIDs() {
	r.ID = NewID()
	for _, c := range r.Cells {
		c.RegenerateIDs()
	}
}

// RegenerateIDs assigns fresh ids to the block and everything below it.
func (b *Block) RegenerateIDs() {
	b.ID = NewID()
	for _, r := range b.Rows {
		r.RegenerateIDs()
	}
}

// RegenerateIDs assigns fresh ids to the placement and its block.
func (i *CanvasBlockInstance) RegenerateIDs() {
	i.ID = NewID()
	if i.Block != nil {
		i.Block.RegenerateIDs()
	}
}

// IDs lists the ids of the cell subtree in depth-first order.
func (c *Cell) IDs() []string {
	ids := []string{c.ID}
	for _, a := range c.Atoms {
		ids = append(ids, a.AtomID())
	}
	for _, r := range c.Rows {
		ids = append(ids, r.IDs()...)
	}
	return ids
}

// IDs lists the ids of the row subtree in depth-first order.
func (r *Row) IDs() []string {
	ids := []string{r.ID}
	for _, c := range r.Cells {
		ids = append(ids, c.IDs()...)
	}
	return ids
}

// IDs lists the ids of the block subtree in depth-first order.
func (b *Block) IDs() []string {
	ids := []string{b.ID}
	for _, r := range b.Rows {
		ids = append(ids, r.IDs()...)
	}
	return ids
}

// IDs lists the placement id followed by its block subtree ids.
func (i *CanvasBlockInstance) IDs() []string {
	ids := []string{i.ID}
	if i.Block != nil {
		ids = append(ids, i.Block.IDs()...)
	}
	return ids
}
