// Package show prints the live template.
package show

import (
	"context"
	"errors"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/printers"
)

// Show prints the outline of the document, or the export payload as JSON.
type Show struct {
	Session *app.Session
	ShowID  bool
	JSON    bool
	// Print writes JSON output.
	Print func(v any) error
}

func (n *Show) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not show, no session")
	}
	if n.JSON && n.Print != nil {
		return n.Print(n.Session.Export())
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	doc := n.Session.Document()
	pp.NewLine()
	pp.TitleWithCount(n.Session.Title(), len(doc.Components), "block")
	pp.Outline(doc, n.Session.Selection())
	return nil
}
