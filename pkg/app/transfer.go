package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/store"
	"tableflip.dev/postcard/pkg/templateio"
)

// ImportMode says how an imported template meets the live document.
type ImportMode string

const (
	// ImportReplace swaps the whole document for the imported one.
	ImportReplace ImportMode = "replace"
	// ImportAppend adds the imported blocks after the existing ones.
	ImportAppend ImportMode = "append"
)

// ParseImportMode converts raw to a mode, defaulting to replace.
func ParseImportMode(raw string) (ImportMode, error) {
	switch ImportMode(raw) {
	case "", ImportReplace:
		return ImportReplace, nil
	case ImportAppend:
		return ImportAppend, nil
	}
	return "", fmt.Errorf("app: unknown import mode %q", raw)
}

// ImportOptions tune Import.
type ImportOptions struct {
	Mode ImportMode
	// IncludeGeneral takes the imported page settings in append mode.
	// Replace mode always takes them.
	IncludeGeneral bool
}

// Import validates raw and splices it into the document. Imported nodes get
// fresh ids. Nothing changes unless the result is OK, and a successful import
// is one undo step.
func (s *Session) Import(raw []byte, opts ImportOptions) templateio.Result {
	s.mu.Lock()
	limits := s.limits
	s.mu.Unlock()

	p, res := templateio.Decode(raw, limits)
	if !res.OK {
		s.log.Info("app: import rejected", zap.Int("issues", len(res.Issues)))
		return res
	}
	return s.apply(templateio.Remap(p), opts)
}

// ImportValue is Import for an already decoded value.
func (s *Session) ImportValue(v any, opts ImportOptions) templateio.Result {
	s.mu.Lock()
	limits := s.limits
	s.mu.Unlock()

	p, res := templateio.DecodeValue(v, limits)
	if !res.OK {
		s.log.Info("app: import rejected", zap.Int("issues", len(res.Issues)))
		return res
	}
	return s.apply(templateio.Remap(p), opts)
}

func (s *Session) apply(p *model.Payload, opts ImportOptions) templateio.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.Mode == ImportAppend {
		total := len(s.doc.Components) + len(p.Canvas.Components)
		if limit := s.limits.MaxComponents; limit > 0 && total > limit {
			return templateio.Result{Issues: templateio.Issues{{
				Path:    "$.canvas.components",
				Message: fmt.Sprintf("appending would make %d components, exceeding the limit of %d", total, limit),
			}}}
		}
		s.doc.Components = append(s.doc.Components, p.Canvas.Components...)
		if opts.IncludeGeneral {
			s.doc.General = p.Editor.General
		}
		s.changed()
		s.setSelection(model.Selection{})
	} else {
		// A replace is a step of its own, apart from any edit burst.
		s.hist.Flush()
		s.adopt(p)
		s.changed()
		s.setSelection(model.Selection{})
		s.hist.Flush()
	}
	s.log.Debug("app: imported",
		zap.String("mode", string(opts.Mode)),
		zap.Int("components", len(p.Canvas.Components)))
	return templateio.Result{OK: true}
}

// Export snapshots the document with fresh meta.
func (s *Session) Export() *model.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportLocked()
}

// ExportJSON is Export encoded as indented JSON.
func (s *Session) ExportJSON() ([]byte, error) {
	return templateio.Marshal(s.Export())
}

// Snapshot returns a sanitized export, safe to hand to a renderer.
func (s *Session) Snapshot() *model.Payload {
	return templateio.Sanitize(s.Export())
}

// SaveNamed stores the document in the template library.
func (s *Session) SaveNamed(name string) error {
	if s.store == nil {
		return ErrNoPersistence
	}
	data, err := s.ExportJSON()
	if err != nil {
		return fmt.Errorf("app: encode template: %w", err)
	}
	return s.store.SaveNamed(name, data)
}

// OpenNamed imports a library template.
func (s *Session) OpenNamed(name string, opts ImportOptions) (templateio.Result, error) {
	if s.store == nil {
		return templateio.Result{}, ErrNoPersistence
	}
	raw, err := s.store.LoadNamed(name)
	if err != nil {
		return templateio.Result{}, err
	}
	return s.Import(raw, opts), nil
}

// ListNamed lists the template library.
func (s *Session) ListNamed(ctx context.Context) ([]store.Named, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if s.store == nil {
		return nil, ErrNoPersistence
	}
	list := s.store.ListNamed(ctx)
	for _, n := range list {
		if n.Err != nil {
			s.log.Warn("app: unreadable library entry", zap.String("name", n.Name), zap.Error(n.Err))
		}
	}
	return list, nil
}

// DeleteNamed removes a library template.
func (s *Session) DeleteNamed(name string) error {
	if s.store == nil {
		return ErrNoPersistence
	}
	return s.store.DeleteNamed(name)
}
