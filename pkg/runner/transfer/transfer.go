// Package transfer moves templates between files and the live template.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/printers"
)

// Stdio is the path that means stdin or stdout.
const Stdio = "-"

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Import loads a template file into the session.
type Import struct {
	Session *app.Session
	Path    string
	Options app.ImportOptions
	// Stdin is read when Path is Stdio.
	Stdin io.Reader
	Out   io.Writer
}

func (n *Import) read() ([]byte, error) {
	if n.Path == Stdio || n.Path == "" {
		in := n.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.ReadAll(in)
	}
	raw, err := os.ReadFile(n.Path)
	if err != nil {
		return nil, err
	}
	if isYAML(n.Path) {
		return yaml.YAMLToJSON(raw)
	}
	return raw, nil
}

func (n *Import) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not import, no session")
	}
	raw, err := n.read()
	if err != nil {
		return err
	}
	res := n.Session.Import(raw, n.Options)
	if !res.OK {
		pp := printers.PrettyPrint{Out: n.Out}
		pp.Issues(res.Issues)
		return res.Err()
	}
	pp := printers.PrettyPrint{Out: n.Out}
	doc := n.Session.Document()
	pp.TitleWithCount(n.Session.Title(), len(doc.Components), "block")
	pp.Outline(doc, n.Session.Selection())
	return nil
}

// Export writes the live template.
type Export struct {
	Session *app.Session
	Format  string
	Path    string
	Stdout  io.Writer
}

// Encode renders the export in the requested format.
func (n *Export) Encode() ([]byte, error) {
	raw, err := n.Session.ExportJSON()
	if err != nil {
		return nil, err
	}
	format := strings.ToLower(n.Format)
	if format == "" && isYAML(n.Path) {
		format = "yaml"
	}
	switch format {
	case "", "json":
		return append(raw, '\n'), nil
	case "yaml", "yml":
		return yaml.JSONToYAML(raw)
	}
	return nil, fmt.Errorf("unknown format %q", n.Format)
}

func (n *Export) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not export, no session")
	}
	data, err := n.Encode()
	if err != nil {
		return err
	}
	if n.Path == "" || n.Path == Stdio {
		out := n.Stdout
		if out == nil {
			out = os.Stdout
		}
		_, err := out.Write(data)
		return err
	}
	return os.WriteFile(n.Path, data, 0o644)
}
