package editor

import (
	"fmt"

	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/printers"
)

// line is one row of the outline.
type line struct {
	ID    string
	Level model.Level
	Depth int
	Text  string
}

func flatten(doc *model.Document, width uint) []line {
	var out []line
	for _, comp := range doc.Components {
		if comp.Block == nil {
			continue
		}
		label := comp.Block.Label
		if label == "" {
			label = "(untitled block)"
		}
		out = append(out, line{ID: comp.Block.ID, Level: model.LevelBlock, Text: "▣ " + label})
		out = flattenRows(out, comp.Block.Rows, 1, width)
	}
	return out
}

func flattenRows(out []line, rows []*model.Row, depth int, width uint) []line {
	for i, r := range rows {
		out = append(out, line{ID: r.ID, Level: model.LevelRow, Depth: depth,
			Text: fmt.Sprintf("▤ row %d", i+1)})
		for j, c := range r.Cells {
			out = append(out, line{ID: c.ID, Level: model.LevelCell, Depth: depth + 1,
				Text: fmt.Sprintf("▢ cell %d", j+1)})
			for _, a := range c.Atoms {
				out = append(out, line{ID: a.AtomID(), Level: model.LevelAtom, Depth: depth + 2,
					Text: "• " + printers.Summary(a, width)})
			}
			out = flattenRows(out, c.Rows, depth+2, width)
		}
	}
	return out
}

func indexOf(lines []line, id string) int {
	for i, l := range lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}
