// Package mcp serves the live template over the Model Context Protocol, so
// an assistant can inspect and edit it through the same session the CLI
// uses.
package mcp

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/printers"
	"tableflip.dev/postcard/pkg/runner/edit"
	"tableflip.dev/postcard/pkg/store"
	"tableflip.dev/postcard/pkg/templateio"
)

// ErrNoSession is returned by every Service method when no session is set.
var ErrNoSession = errors.New("mcp: session is not configured")

// Service adapts a Session to transport-friendly calls.
type Service struct {
	Session *app.Session
	Theme   catalog.Theme
	Limits  templateio.Limits
}

// NewService wraps s. Presets are built in theme and pasted templates are
// checked against limits.
func NewService(s *app.Session, theme catalog.Theme, limits templateio.Limits) *Service {
	return &Service{Session: s, Theme: theme, Limits: limits}
}

// NodeDTO is one node of the outline.
type NodeDTO struct {
	ID       string    `json:"id"`
	Level    string    `json:"level"`
	Label    string    `json:"label,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Children []NodeDTO `json:"children,omitempty"`
}

// OutlineDTO describes the live template without its settings.
type OutlineDTO struct {
	Title     string          `json:"title"`
	Selection model.Selection `json:"selection"`
	Blocks    []NodeDTO       `json:"blocks"`
	CanUndo   bool            `json:"canUndo"`
	CanRedo   bool            `json:"canRedo"`
}

// PresetDTO describes a catalog entry.
type PresetDTO struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Type    string `json:"type"`
	Preview string `json:"preview"`
}

// AddOptions describes a node to insert. See edit.Add.
type AddOptions struct {
	Kind     string
	ParentID string
	AtomType string
	Preset   string
	Label    string
	At       int
}

func (s *Service) check() error {
	if s == nil || s.Session == nil {
		return ErrNoSession
	}
	return nil
}

// Outline returns the tree of the live template.
func (s *Service) Outline(ctx context.Context) (*OutlineDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	doc := s.Session.Document()
	out := &OutlineDTO{
		Title:     s.Session.Title(),
		Selection: s.Session.Selection(),
		Blocks:    make([]NodeDTO, 0, len(doc.Components)),
		CanUndo:   s.Session.CanUndo(),
		CanRedo:   s.Session.CanRedo(),
	}
	for _, c := range doc.Components {
		if c.Block == nil {
			continue
		}
		out.Blocks = append(out.Blocks, NodeDTO{
			ID:       c.Block.ID,
			Level:    string(model.LevelBlock),
			Label:    c.Block.Label,
			Children: rowNodes(c.Block.Rows),
		})
	}
	return out, nil
}

func rowNodes(rows []*model.Row) []NodeDTO {
	out := make([]NodeDTO, 0, len(rows))
	for _, r := range rows {
		row := NodeDTO{ID: r.ID, Level: string(model.LevelRow)}
		for _, c := range r.Cells {
			cell := NodeDTO{ID: c.ID, Level: string(model.LevelCell)}
			for _, a := range c.Atoms {
				cell.Children = append(cell.Children, NodeDTO{
					ID:      a.AtomID(),
					Level:   string(model.LevelAtom),
					Label:   string(a.Type()),
					Summary: printers.Summary(a, 80),
				})
			}
			cell.Children = append(cell.Children, rowNodes(c.Rows)...)
			row.Children = append(row.Children, cell)
		}
		out = append(out, row)
	}
	return out
}

// Template exports the live template.
func (s *Service) Template(ctx context.Context) (*model.Payload, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.Session.Export(), nil
}

// Validate runs raw through the import pipeline without applying it.
func (s *Service) Validate(ctx context.Context, raw string) templateio.Result {
	_, res := templateio.Decode([]byte(raw), s.Limits)
	return res
}

// Import applies raw to the live template.
func (s *Service) Import(ctx context.Context, raw string, opts app.ImportOptions) (templateio.Result, error) {
	if err := s.check(); err != nil {
		return templateio.Result{}, err
	}
	return s.Session.Import([]byte(raw), opts), nil
}

// Add inserts a node and returns its id.
func (s *Service) Add(ctx context.Context, opts AddOptions) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	r := edit.Add{
		Session:  s.Session,
		Kind:     edit.Kind(opts.Kind),
		ParentID: opts.ParentID,
		Preset:   opts.Preset,
		Theme:    s.Theme,
		Label:    opts.Label,
		At:       opts.At,
		Out:      io.Discard,
	}
	if opts.AtomType != "" {
		t, err := model.ParseAtomType(opts.AtomType)
		if err != nil {
			return "", err
		}
		r.AtomType = t
	} else {
		r.AtomType = model.AtomText
	}
	if err := r.Do(ctx); err != nil {
		return "", err
	}
	return r.Created, nil
}

// Remove deletes the node with id.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.check(); err != nil {
		return err
	}
	r := edit.Remove{Session: s.Session, ID: id, Out: io.Discard}
	return r.Do(ctx)
}

// Duplicate copies the node with id and returns the id of the copy.
func (s *Service) Duplicate(ctx context.Context, id string) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	r := edit.Duplicate{Session: s.Session, ID: id, Out: io.Discard}
	if err := r.Do(ctx); err != nil {
		return "", err
	}
	return r.Created, nil
}

// Move puts the node with id at index to among its siblings; a negative
// index means last.
func (s *Service) Move(ctx context.Context, id string, to int) error {
	if err := s.check(); err != nil {
		return err
	}
	r := edit.Move{Session: s.Session, ID: id, To: to, Out: io.Discard}
	return r.Do(ctx)
}

// Set writes one setting by key.
func (s *Service) Set(ctx context.Context, key, value string) error {
	if err := s.check(); err != nil {
		return err
	}
	r := edit.Set{Session: s.Session, Key: key, Value: value, Out: io.Discard}
	return r.Do(ctx)
}

// Undo steps back once. It reports whether anything changed.
func (s *Service) Undo(ctx context.Context) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	return s.Session.Undo(), nil
}

// Redo steps forward once.
func (s *Service) Redo(ctx context.Context) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	return s.Session.Redo(), nil
}

// Presets lists the catalog in the service theme.
func (s *Service) Presets() []PresetDTO {
	all := catalog.All(s.Theme)
	out := make([]PresetDTO, 0, len(all))
	for _, p := range all {
		out = append(out, PresetDTO{Name: p.Name, Label: p.Label, Type: p.Type, Preview: p.Preview})
	}
	return out
}

// Library lists the saved templates.
func (s *Service) Library(ctx context.Context) ([]store.Named, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.Session.ListNamed(ctx)
}
