// Package edit implements the structural edit operations on a live
// document: insert, remove, duplicate and move at every tree level, plus
// typed settings updates.
//
// Targets are resolved by id through a depth-first search of the tree.
// Nothing here returns an error: an id chain that no longer resolves, an
// out-of-range index or a removal that would leave a block without rows or a
// row without cells is a no-op reported by a nil or false result.
package edit

import (
	"slices"

	"tableflip.dev/postcard/pkg/model"
)

// End appends when passed as an insertion index.
const End = -1

func insertAt[T any](list []T, at int, v T) []T {
	if at < 0 || at > len(list) {
		at = len(list)
	}
	return slices.Insert(list, at, v)
}

func removeAt[T any](list []T, i int) []T {
	return slices.Delete(list, i, i+1)
}

// moveItem reorders list in place. Equal or out-of-range indices report false.
func moveItem[T any](list []T, from, to int) bool {
	n := len(list)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return false
	}
	v := list[from]
	if from < to {
		copy(list[from:to], list[from+1:to+1])
	} else {
		copy(list[to+1:from+1], list[to:from])
	}
	list[to] = v
	return true
}

func findBlock(doc *model.Document, blockID string) (*model.CanvasBlockInstance, bool) {
	if doc == nil || blockID == "" {
		return nil, false
	}
	i, comp := doc.FindBlock(blockID)
	return comp, i >= 0
}

func findRow(doc *model.Document, blockID, rowID string) (*model.CanvasBlockInstance, model.RowRef, bool) {
	comp, ok := findBlock(doc, blockID)
	if !ok {
		return nil, model.RowRef{}, false
	}
	ref, ok := comp.Block.FindRow(rowID)
	return comp, ref, ok
}

func findCell(doc *model.Document, blockID, rowID, cellID string) (*model.CanvasBlockInstance, model.CellRef, bool) {
	comp, ok := findBlock(doc, blockID)
	if !ok {
		return nil, model.CellRef{}, false
	}
	ref, ok := comp.Block.FindCell(rowID, cellID)
	return comp, ref, ok
}
