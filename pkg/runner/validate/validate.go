// Package validate checks template files without touching the live
// template.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/postcard/pkg/printers"
	"tableflip.dev/postcard/pkg/store"
	"tableflip.dev/postcard/pkg/templateio"
)

// Validate reads Path and reports its issues. With Watch set it keeps
// checking the file after every change until ctx ends.
type Validate struct {
	Path   string
	Limits templateio.Limits
	Watch  bool
	JSON   bool
	Out    io.Writer
	Log    *zap.Logger
}

// ErrInvalid is returned by a one-shot check of an invalid file.
type ErrInvalid struct {
	Issues templateio.Issues
}

func (e *ErrInvalid) Error() string {
	return fmt.Sprintf("template is invalid: %d issues", len(e.Issues))
}

func (n *Validate) log() *zap.Logger {
	if n.Log == nil {
		return zap.NewNop()
	}
	return n.Log
}

// Check validates the file once.
func (n *Validate) Check() (templateio.Issues, error) {
	raw, err := os.ReadFile(n.Path)
	if err != nil {
		return nil, err
	}
	return templateio.ValidateText(raw, n.Limits), nil
}

func (n *Validate) report(issues templateio.Issues) error {
	if n.JSON {
		if issues == nil {
			issues = templateio.Issues{}
		}
		w := n.Out
		if w == nil {
			w = os.Stdout
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"ok": len(issues) == 0, "issues": issues})
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Issues(issues)
	return nil
}

func (n *Validate) Do(ctx context.Context) error {
	issues, err := n.Check()
	if err != nil {
		return err
	}
	if err := n.report(issues); err != nil {
		return err
	}
	if !n.Watch {
		if len(issues) > 0 {
			return &ErrInvalid{Issues: issues}
		}
		return nil
	}

	events, err := store.WatchFile(ctx, n.Path)
	if err != nil {
		return err
	}
	for ev := range events {
		switch ev.Type {
		case store.EventFileRemoved:
			n.log().Warn("validate: file removed, waiting for it to come back", zap.String("path", ev.Path))
			continue
		case store.EventFileChanged:
			n.log().Debug("validate: file changed", zap.String("path", ev.Path), zap.Time("at", time.Now()))
		}
		issues, err := n.Check()
		if err != nil {
			n.log().Warn("validate: read", zap.Error(err))
			continue
		}
		if err := n.report(issues); err != nil {
			return err
		}
	}
	return ctx.Err()
}
