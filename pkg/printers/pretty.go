// Package printers renders templates, validation issues and listings for
// the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/microcosm-cc/bluemonday"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/store"
	"tableflip.dev/postcard/pkg/templateio"
)

// PrettyPrint writes human readable output.
type PrettyPrint struct {
	ShowID bool
	// Width bounds summaries; zero means 60 columns.
	Width int
	Out   io.Writer
}

var (
	spacing = strings.Repeat(" ", len("01234567-89ab-cdef-0123-456789abcdef  "))
	strip   = bluemonday.StrictPolicy()
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() uint {
	if pp.Width <= 0 {
		return 60
	}
	return uint(pp.Width)
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Outline prints the document as an indented tree. The node sel points at
// is highlighted.
func (pp *PrettyPrint) Outline(doc *model.Document, sel model.Selection) {
	if len(doc.Components) == 0 {
		pp.none()
		return
	}
	for _, comp := range doc.Components {
		if comp.Block == nil {
			continue
		}
		b := comp.Block
		label := b.Label
		if label == "" {
			label = "(untitled block)"
		}
		pp.line(b.ID, 0, "▣", label, sel.Level == model.LevelBlock && sel.BlockID == b.ID)
		pp.rows(b.Rows, 1, sel)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) rows(rows []*model.Row, depth int, sel model.Selection) {
	for i, r := range rows {
		pp.line(r.ID, depth, "▤", fmt.Sprintf("row %d · %d cells", i+1, len(r.Cells)),
			sel.Level == model.LevelRow && sel.RowID == r.ID)
		for j, c := range r.Cells {
			pp.line(c.ID, depth+1, "▢", fmt.Sprintf("cell %d · %s", j+1, c.Settings.VerticalAlign),
				sel.Level == model.LevelCell && sel.CellID == c.ID)
			for _, a := range c.Atoms {
				pp.line(a.AtomID(), depth+2, "•", Summary(a, pp.width()),
					sel.Level == model.LevelAtom && sel.AtomID == a.AtomID())
			}
			pp.rows(c.Rows, depth+2, sel)
		}
	}
}

func (pp *PrettyPrint) line(id string, depth int, glyph, text string, selected bool) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	t := color.New()
	if selected {
		t = color.New(color.Bold, color.FgCyan)
	}
	if pp.ShowID {
		_, _ = y.Fprint(pp.out(), id)
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(1, len(spacing)-len(id))))
	}
	_, _ = t.Fprintf(pp.out(), "%s%s %s\n", strings.Repeat("  ", depth), glyph, text)
}

// Summary describes an atom in one line of at most width columns.
func Summary(a model.Atom, width uint) string {
	var s string
	switch t := a.(type) {
	case *model.TextAtom:
		s = "text: " + strings.Join(strings.Fields(strip.Sanitize(t.Value)), " ")
	case *model.ButtonAtom:
		s = fmt.Sprintf("button: %s → %s", t.Text, t.Link)
	case *model.DividerAtom:
		s = fmt.Sprintf("divider: %gpx %s", t.Height, t.Color)
	case *model.ImageAtom:
		s = "image: " + t.Src
	case *model.MenuAtom:
		s = fmt.Sprintf("menu: %d %s items", len(t.Items), t.EffectiveItemType())
	default:
		s = string(a.Type())
	}
	return truncate.StringWithTail(s, width, "…")
}

// Issues prints validation issues as a table.
func (pp *PrettyPrint) Issues(issues templateio.Issues) {
	if len(issues) == 0 {
		_, _ = color.New(color.FgGreen).Fprintln(pp.out(), "✔ valid template")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 80
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Path"), bold.Sprint("Problem"))
	for _, is := range issues {
		tbl.AddRow(is.Path, is.Message)
	}
	_, _ = color.New(color.FgRed).Fprintf(pp.out(), "✖ %d issues\n", len(issues))
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Presets prints the block catalog.
func (pp *PrettyPrint) Presets(presets []catalog.BlockPreset) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Type"), bold.Sprint("Preview"))
	for _, p := range presets {
		tbl.AddRow(p.Name, p.Type, p.Preview)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Library prints saved templates.
func (pp *PrettyPrint) Library(named []store.Named) {
	pp.TitleWithCount("Library", len(named), "template")
	if len(named) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Title"), bold.Sprint("Updated"))
	for _, n := range named {
		tbl.AddRow(n.Name, n.Meta.Title, n.Meta.UpdatedAt)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
