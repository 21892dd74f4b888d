// Package catalog holds the pre-built blocks offered for insertion. A preset
// is never part of a document until it is instantiated, which clones it with
// fresh ids.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/postcard/pkg/model"
)

// Theme selects the palette a preset is built with.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrUnknownPreset is returned by New for names not in the catalog.
var ErrUnknownPreset = errors.New("catalog: unknown preset")

// ParseTheme converts raw to a Theme, defaulting to light.
func ParseTheme(raw string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(raw))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Palette is the set of colors a preset paints with.
type Palette struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Accent     string
	AccentText string
	Border     string
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("catalog: bad color %q: %v", s, err))
	}
	return c
}

// PaletteFor derives the palette of a theme from its base colors. Muted text
// and borders are blends of the text and background colors.
func PaletteFor(theme Theme) Palette {
	bg, text, accent := mustHex("#ffffff"), mustHex("#1f2933"), mustHex("#2563eb")
	if theme == ThemeDark {
		bg, text = mustHex("#111827"), mustHex("#f9fafb")
		accent = accent.BlendLab(mustHex("#ffffff"), 0.25)
	}
	return Palette{
		Background: bg.Hex(),
		Surface:    bg.BlendLab(text, 0.04).Clamped().Hex(),
		Text:       text.Hex(),
		Muted:      text.BlendLab(bg, 0.4).Clamped().Hex(),
		Accent:     accent.Clamped().Hex(),
		AccentText: "#ffffff",
		Border:     text.BlendLab(bg, 0.85).Clamped().Hex(),
	}
}

// BlockPreset is a ready-made block with display metadata.
type BlockPreset struct {
	Instance *model.CanvasBlockInstance
	Name     string
	Label    string
	Type     string
	Preview  string
}

// Instantiate returns a copy of the preset's instance with fresh ids.
func (p BlockPreset) Instantiate() *model.CanvasBlockInstance {
	inst := p.Instance.Clone()
	inst.RegenerateIDs()
	return inst
}

// Factory builds a preset for a theme. An empty label takes the preset's
// default.
type Factory func(theme Theme, label string) BlockPreset

type entry struct {
	name    string
	label   string
	kind    string
	preview string
	build   func(p Palette) *model.Block
}

var entries = []entry{
	{"header", "Header", "layout", "Logo with navigation links", header},
	{"text", "Text", "content", "A heading and a paragraph", text},
	{"button", "Button", "content", "A centered call to action", button},
	{"image", "Image", "content", "A full width image", image},
	{"divider", "Divider", "layout", "A thin horizontal rule", divider},
	{"menu", "Menu", "navigation", "A row of text links", menu},
	{"two-column", "Two columns", "layout", "Image and text side by side", twoColumn},
	{"footer", "Footer", "layout", "Social links and the fine print", footer},
}

// Names lists the presets in catalog order.
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Lookup returns the factory for name.
func Lookup(name string) (Factory, bool) {
	for _, e := range entries {
		if e.name == name {
			e := e
			return func(theme Theme, label string) BlockPreset {
				if label == "" {
					label = e.label
				}
				b := e.build(PaletteFor(theme))
				b.Label = label
				return BlockPreset{
					Instance: model.NewInstance(b),
					Name:     e.name,
					Label:    label,
					Type:     e.kind,
					Preview:  e.preview,
				}
			}, true
		}
	}
	return nil, false
}

// New builds the named preset.
func New(name string, theme Theme, label string) (BlockPreset, error) {
	f, ok := Lookup(name)
	if !ok {
		return BlockPreset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return f(theme, label), nil
}

// All builds every preset for a theme.
func All(theme Theme) []BlockPreset {
	out := make([]BlockPreset, 0, len(entries))
	for _, name := range Names() {
		p, _ := New(name, theme, "")
		out = append(out, p)
	}
	return out
}
