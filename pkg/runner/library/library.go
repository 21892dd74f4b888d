// Package library manages the named template library.
package library

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/printers"
)

var errNoSession = errors.New("library: no session")

func done(out io.Writer, format string, args ...any) {
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.FgGreen).Fprintf(out, format+"\n", args...)
}

// Save stores the live template under Name.
type Save struct {
	Session *app.Session
	Name    string
	Out     io.Writer
}

func (n *Save) Do(ctx context.Context) error {
	if n.Session == nil {
		return errNoSession
	}
	if err := n.Session.SaveNamed(n.Name); err != nil {
		return err
	}
	done(n.Out, "saved %q", n.Name)
	return nil
}

// List prints the library.
type List struct {
	Session *app.Session
	JSON    bool
	Print   func(v any) error
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Session == nil {
		return errNoSession
	}
	named, err := n.Session.ListNamed(ctx)
	if err != nil {
		return err
	}
	if n.JSON && n.Print != nil {
		return n.Print(named)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Library(named)
	return nil
}

// Open replaces, or appends to, the live template with a library one.
type Open struct {
	Session *app.Session
	Name    string
	Options app.ImportOptions
	Out     io.Writer
}

func (n *Open) Do(ctx context.Context) error {
	if n.Session == nil {
		return errNoSession
	}
	res, err := n.Session.OpenNamed(n.Name, n.Options)
	if err != nil {
		return err
	}
	if !res.OK {
		pp := printers.PrettyPrint{Out: n.Out}
		pp.Issues(res.Issues)
		return res.Err()
	}
	done(n.Out, "opened %q", n.Name)
	return nil
}

// Delete removes a library template.
type Delete struct {
	Session *app.Session
	Name    string
	Out     io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Session == nil {
		return errNoSession
	}
	if err := n.Session.DeleteNamed(n.Name); err != nil {
		return err
	}
	done(n.Out, "deleted %q", n.Name)
	return nil
}

// Clear empties the canvas of the live template.
type Clear struct {
	Session *app.Session
	Out     io.Writer
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Session == nil {
		return errNoSession
	}
	n.Session.ClearCanvas()
	done(n.Out, "cleared the canvas")
	return nil
}
