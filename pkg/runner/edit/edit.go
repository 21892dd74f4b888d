// Package edit runs single tree edits against the live template.
package edit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	tree "tableflip.dev/postcard/pkg/edit"
	"tableflip.dev/postcard/pkg/model"
)

// Kind names what Add creates.
type Kind string

const (
	KindBlock Kind = "block"
	KindRow   Kind = "row"
	KindCell  Kind = "cell"
	KindAtom  Kind = "atom"
)

// ErrNotFound is returned when an id does not resolve.
var ErrNotFound = errors.New("edit: no node with that id")

// ErrNoChange is returned when an edit resolved but changed nothing.
var ErrNoChange = errors.New("edit: nothing changed")

func report(out io.Writer, verb, id string) {
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.FgGreen).Fprintf(out, "%s %s\n", verb, id)
}

func resolve(s *app.Session, id string) (model.Selection, error) {
	sel, ok := s.Resolve(id)
	if !ok {
		return model.Selection{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return sel, nil
}

// Add inserts a node. Blocks come from the preset catalog; rows go into a
// block or a cell; cells into a row; atoms into a cell.
type Add struct {
	Session  *app.Session
	Kind     Kind
	ParentID string
	AtomType model.AtomType
	Preset   string
	Theme    catalog.Theme
	Label    string
	At       int
	Out      io.Writer

	// Created holds the id of the new node after Do.
	Created string
}

func (n *Add) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not add, no session")
	}
	id, err := n.add()
	if err != nil {
		return err
	}
	n.Created = id
	report(n.Out, "added", id)
	return nil
}

func (n *Add) add() (string, error) {
	s := n.Session
	if n.Kind == KindBlock {
		p, err := catalog.New(n.Preset, n.Theme, n.Label)
		if err != nil {
			return "", err
		}
		inst := s.InstallPreset(p, n.At)
		if inst == nil {
			return "", ErrNoChange
		}
		return inst.Block.ID, nil
	}

	sel, err := resolve(s, n.ParentID)
	if err != nil {
		return "", err
	}
	var id string
	switch {
	case n.Kind == KindRow && sel.Level == model.LevelBlock:
		if r := s.InsertRow(sel.BlockID, n.At); r != nil {
			id = r.ID
		}
	case n.Kind == KindRow && sel.Level == model.LevelCell:
		if r := s.InsertRowInCell(sel.BlockID, sel.RowID, sel.CellID, n.At); r != nil {
			id = r.ID
		}
	case n.Kind == KindCell && sel.Level == model.LevelRow:
		if c := s.InsertCell(sel.BlockID, sel.RowID, n.At); c != nil {
			id = c.ID
		}
	case n.Kind == KindAtom && sel.Level == model.LevelCell:
		if a := s.InsertAtom(sel.BlockID, sel.RowID, sel.CellID, n.AtomType, n.At); a != nil {
			id = a.AtomID()
		}
	default:
		return "", fmt.Errorf("edit: can not add a %s to a %s", n.Kind, sel.Level)
	}
	if id == "" {
		return "", ErrNoChange
	}
	return id, nil
}

// Remove deletes the node with ID.
type Remove struct {
	Session *app.Session
	ID      string
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if _, err := resolve(n.Session, n.ID); err != nil {
		return err
	}
	n.Session.SelectID(n.ID)
	if !n.Session.RemoveSelected() {
		return fmt.Errorf("%w: the last row of a block and the last cell of a row stay", ErrNoChange)
	}
	report(n.Out, "removed", n.ID)
	return nil
}

// Duplicate copies the node with ID next to itself.
type Duplicate struct {
	Session *app.Session
	ID      string
	Out     io.Writer

	Created string
}

func (n *Duplicate) Do(ctx context.Context) error {
	if _, err := resolve(n.Session, n.ID); err != nil {
		return err
	}
	n.Session.SelectID(n.ID)
	id := n.Session.DuplicateSelected()
	if id == "" {
		return ErrNoChange
	}
	n.Created = id
	report(n.Out, "duplicated", id)
	return nil
}

// Move puts the node with ID at index To among its siblings.
type Move struct {
	Session *app.Session
	ID      string
	To      int
	Out     io.Writer
}

func (n *Move) Do(ctx context.Context) error {
	if _, err := resolve(n.Session, n.ID); err != nil {
		return err
	}
	n.Session.SelectID(n.ID)
	to := n.To
	if to < 0 {
		_, count, _ := n.Session.Position()
		to = count - 1
	}
	if !n.Session.MoveSelected(to) {
		return ErrNoChange
	}
	report(n.Out, "moved", n.ID)
	return nil
}

// Set writes one setting addressed by a setting key such as
// "v2-settings::cell::<id>::verticalAlign" or "v2-general::previewText".
// A value holding a JSON array is decoded first, so insets may be given as
// "[8,16,8,16]".
type Set struct {
	Session *app.Session
	Key     string
	Value   string
	Out     io.Writer
}

func (n *Set) Do(ctx context.Context) error {
	key, err := tree.ParseSettingKey(n.Key)
	if err != nil {
		return err
	}
	var value any = n.Value
	var list []any
	if json.Unmarshal([]byte(n.Value), &list) == nil {
		value = list
	}
	if !n.Session.UpdateSetting(key, value) {
		return fmt.Errorf("%w: %s can not take %q", ErrNoChange, key, n.Value)
	}
	report(n.Out, "set", key.String())
	return nil
}
