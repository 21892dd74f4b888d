package model

// Level names a tree level.
type Level string

const (
	LevelNone  Level = ""
	LevelBlock Level = "block"
	LevelRow   Level = "row"
	LevelCell  Level = "cell"
	LevelAtom  Level = "atom"
)

// ParseLevel converts raw to a Level; unknown input yields LevelNone and false.
func ParseLevel(raw string) (Level, bool) {
	switch l := Level(raw); l {
	case LevelBlock, LevelRow, LevelCell, LevelAtom:
		return l, true
	}
	return LevelNone, false
}

// Selection is the node currently focused for editing. The ids above Level
// describe the chain leading to the target; RowID and CellID are always the
// innermost row and cell containing the target.
type Selection struct {
	Level       Level  `json:"level,omitempty"`
	ComponentID string `json:"componentId,omitempty"`
	BlockID     string `json:"blockId,omitempty"`
	RowID       string `json:"rowId,omitempty"`
	CellID      string `json:"cellId,omitempty"`
	AtomID      string `json:"atomId,omitempty"`
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool {
	return s.Level == LevelNone
}

// TargetID returns the id of the selected node.
func (s Selection) TargetID() string {
	switch s.Level {
	case LevelBlock:
		return s.BlockID
	case LevelRow:
		return s.RowID
	case LevelCell:
		return s.CellID
	case LevelAtom:
		return s.AtomID
	default:
		return ""
	}
}
