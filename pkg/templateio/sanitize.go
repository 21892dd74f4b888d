package templateio

import (
	"math"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/style"
)

var (
	cssColor = regexp.MustCompile(`(?i)^(#[0-9a-f]{3,8}|rgba?\(\s*\d{1,3}%?\s*,\s*\d{1,3}%?\s*,\s*\d{1,3}%?\s*(,\s*(0|1|0?\.\d+)\s*)?\))$`)
	cssSize  = regexp.MustCompile(`(?i)^-?\d+(\.\d+)?(px|em|rem|%|pt)$`)
	cssBox   = regexp.MustCompile(`(?i)^(-?\d+(\.\d+)?(px|em|rem|%|pt)\s*){1,4}$`)

	textPolicy = newTextPolicy()
)

// newTextPolicy builds the allow-list applied to rich text. Only inline and
// simple structural formatting survives; script and style content is dropped
// along with its element.
func newTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "span", "div", "a",
		"strong", "b", "em", "i", "u", "s", "strike", "sub", "sup", "small", "mark",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "blockquote", "code", "pre",
	)
	p.AllowAttrs("style").Globally()
	p.AllowAttrs("href", "name", "target", "rel").OnElements("a")

	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(false)

	p.AllowStyles("color", "background-color").Matching(cssColor).Globally()
	p.AllowStyles("font-size", "line-height", "letter-spacing").Matching(cssSize).Globally()
	p.AllowStyles("margin", "padding").Matching(cssBox).Globally()
	p.AllowStyles("text-align").MatchingEnum("left", "center", "right", "justify").Globally()
	p.AllowStyles("font-weight").MatchingEnum(
		"normal", "bold", "bolder", "lighter",
		"100", "200", "300", "400", "500", "600", "700", "800", "900",
	).Globally()
	p.AllowStyles("font-style").MatchingEnum("normal", "italic", "oblique").Globally()
	p.AllowStyles("text-decoration").MatchingEnum("none", "underline", "line-through", "overline").Globally()
	return p
}

// SanitizeHTML runs a rich text fragment through the text allow-list.
func SanitizeHTML(fragment string) string {
	return textPolicy.Sanitize(fragment)
}

// Sanitize returns a render-safe deep copy of a validated payload: rich text
// is allow-listed, malformed enums and insets are replaced by defaults and
// invalid optional numbers are dropped. Sanitize(Sanitize(p)) equals
// Sanitize(p).
func Sanitize(p *model.Payload) *model.Payload {
	out := p.Clone()
	out.Version = model.Version
	out.Editor.General = sanitizeGeneral(out.Editor.General)

	components := make([]*model.CanvasBlockInstance, 0, len(out.Canvas.Components))
	for _, c := range out.Canvas.Components {
		if c.Block == nil {
			continue
		}
		c.Version = model.Version
		sanitizeBlock(c.Block)
		components = append(components, c)
	}
	out.Canvas.Components = components
	return out
}

func sanitizeGeneral(g model.General) model.General {
	g.Padding = g.Padding.Finite()
	bg := style.BackgroundImage{Repeat: g.Background.Repeat, Size: g.Background.Size, Position: g.Background.Position}.Normalized()
	g.Background.Repeat, g.Background.Size, g.Background.Position = bg.Repeat, bg.Size, bg.Position
	return g
}

func finiteSize(f *float64) *float64 {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) || *f < 0 {
		return nil
	}
	return f
}

func finite(f, def float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func sanitizeSpacing(s *style.Spacing) {
	if s.Margin != nil {
		m := s.Margin.Finite()
		s.Margin = &m
	}
	if s.Padding != nil {
		p := s.Padding.Finite()
		s.Padding = &p
	}
}

func sanitizeImage(img *style.BackgroundImage) *style.BackgroundImage {
	if img == nil {
		return nil
	}
	n := img.Normalized()
	return &n
}

func sanitizeBlock(b *model.Block) {
	sanitizeSpacing(&b.Settings.Spacing)
	b.Settings.BackgroundImage = sanitizeImage(b.Settings.BackgroundImage)
	sanitizeRows(b.Rows)
}

func sanitizeRows(rows []*model.Row) {
	for _, r := range rows {
		s := &r.Settings
		sanitizeSpacing(&s.Spacing)
		s.BackgroundImage = sanitizeImage(s.BackgroundImage)
		s.Height = finiteSize(s.Height)
		if s.Gap = finite(s.Gap, 0); s.Gap < 0 {
			s.Gap = 0
		}
		for _, c := range r.Cells {
			sanitizeCell(c)
		}
	}
}

func sanitizeCell(c *model.Cell) {
	s := &c.Settings
	sanitizeSpacing(&s.Spacing)
	s.BackgroundImage = sanitizeImage(s.BackgroundImage)
	if !s.VerticalAlign.Valid() {
		s.VerticalAlign = style.AlignTop
	}
	if s.HorizontalAlign != "" && !s.HorizontalAlign.Valid() {
		s.HorizontalAlign = ""
	}
	s.BorderRadius = finiteSize(s.BorderRadius)
	s.Width = finiteSize(s.Width)
	s.Height = finiteSize(s.Height)
	for _, a := range c.Atoms {
		sanitizeAtom(a)
	}
	sanitizeRows(c.Rows)
}

func sanitizeAtom(a model.Atom) {
	if sp := a.AtomSpacing(); sp != nil {
		sanitizeSpacing(sp)
	}
	switch t := a.(type) {
	case *model.TextAtom:
		t.Value = SanitizeHTML(t.Value)
	case *model.ButtonAtom:
		t.Padding = t.Padding.Finite()
		t.FontSize = finite(t.FontSize, 16)
		t.BorderRadius = finite(t.BorderRadius, 0)
	case *model.DividerAtom:
		t.Height = finite(t.Height, 1)
	case *model.ImageAtom:
		t.Width = finiteSize(t.Width)
		t.Height = finiteSize(t.Height)
		t.BorderRadius = finiteSize(t.BorderRadius)
	case *model.MenuAtom:
		sanitizeMenu(t)
	}
}

// sanitizeMenu settles the effective item type and coerces every item to it.
func sanitizeMenu(m *model.MenuAtom) {
	m.ItemType = m.EffectiveItemType()
	m.Gap = finiteSize(m.Gap)
	for i, it := range m.Items {
		it = model.ConvertMenuItem(it, m.ItemType)
		switch item := it.(type) {
		case *model.TextMenuItem:
			item.FontSize = finite(item.FontSize, 14)
		case *model.ImageMenuItem:
			if item.Width = finite(item.Width, 24); item.Width < 0 {
				item.Width = 24
			}
			if item.Height = finite(item.Height, 24); item.Height < 0 {
				item.Height = 24
			}
		}
		m.Items[i] = it
	}
}
