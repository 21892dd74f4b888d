// Package presets lists the block catalog.
package presets

import (
	"context"
	"io"

	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/printers"
)

// Presets prints every preset of the catalog for Theme.
type Presets struct {
	Theme catalog.Theme
	JSON  bool
	Print func(v any) error
	Out   io.Writer
}

type listing struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Type    string `json:"type"`
	Preview string `json:"preview"`
	Theme   string `json:"theme"`
}

func (n *Presets) Do(ctx context.Context) error {
	all := catalog.All(n.Theme)
	if n.JSON && n.Print != nil {
		out := make([]listing, 0, len(all))
		for _, p := range all {
			out = append(out, listing{Name: p.Name, Label: p.Label, Type: p.Type, Preview: p.Preview, Theme: string(n.Theme)})
		}
		return n.Print(out)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title("Presets (" + string(n.Theme) + ")")
	pp.Presets(all)
	return nil
}
