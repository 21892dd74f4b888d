package templateio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/style"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		has    []string
		hasNot []string
	}{{
		name:   "script",
		in:     `<p>ok</p><script>steal()</script>`,
		has:    []string{"<p>ok</p>"},
		hasNot: []string{"script", "steal"},
	}, {
		name:   "event handler",
		in:     `<p onclick="x()">hi</p>`,
		has:    []string{"<p>hi</p>"},
		hasNot: []string{"onclick"},
	}, {
		name:   "javascript link",
		in:     `<a href="javascript:alert(1)">x</a>`,
		hasNot: []string{"javascript", "href"},
	}, {
		name:   "protocol relative link",
		in:     `<a href="//evil.test/x">x</a>`,
		hasNot: []string{"evil.test"},
	}, {
		name: "allowed links",
		in:   `<a href="https://x.test" target="_blank">a</a><a href="mailto:a@x.test">b</a><a href="tel:+15550100">c</a>`,
		has:  []string{`href="https://x.test"`, `target="_blank"`, `href="mailto:a@x.test"`, `href="tel:+15550100"`},
	}, {
		name:   "forms and frames",
		in:     `<form><input name="q"></form><iframe src="https://x.test"></iframe><img src="x">`,
		hasNot: []string{"form", "input", "iframe", "img"},
	}, {
		name:   "styles",
		in:     `<span style="color: #ff0000; font-size: 14px; text-align: center">a</span><span style="color: red; font-size: 14; position: fixed">b</span>`,
		has:    []string{"#ff0000", "14px", "center"},
		hasNot: []string{"red", "fixed", "font-size: 14;"},
	}, {
		name: "rgba color",
		in:   `<strong style="color: rgba(1, 2, 3, 0.5)">x</strong>`,
		has:  []string{"rgba(", "0.5", "<strong"},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeHTML(tt.in)
			for _, s := range tt.has {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.hasNot {
				assert.NotContains(t, got, s)
			}
			assert.Equal(t, got, SanitizeHTML(got))
		})
	}
}

func dirtyPayload() *model.Payload {
	doc := sampleDocument()
	cell := doc.Components[0].Block.Rows[0].Cells[0]
	cell.Settings.VerticalAlign = "baseline"
	cell.Settings.HorizontalAlign = "justify"
	cell.Settings.BorderRadius = model.Float(-2)
	cell.Settings.BackgroundImage = &style.BackgroundImage{URL: "https://x.test/c.png", Repeat: "tile", Size: "huge", Position: "button"}
	cell.Atoms[0].(*model.TextAtom).Value = `<p style="color: red">Tom &amp; "Jerry"</p><script>x()</script>`
	img := cell.Atoms[3].(*model.ImageAtom)
	img.Width = model.Float(math.Inf(1))
	img.Height = model.Float(-10)
	img.BorderRadius = model.Float(4)
	menu := cell.Atoms[4].(*model.MenuAtom)
	menu.ItemType = ""
	menu.Items = model.MenuItems{
		model.NewImageMenuItem("Mastodon", "https://x.test/m", "https://x.test/m.png"),
		model.NewTextMenuItem("Blog", "https://x.test/blog"),
	}
	doc.General.Background.Size = "everything"
	doc.General.Padding = style.Insets{math.NaN(), 1, 2, 3}
	return Export(doc, ExportOptions{})
}

func TestSanitizeNormalizes(t *testing.T) {
	in := dirtyPayload()
	out := Sanitize(in)

	cell := out.Canvas.Components[0].Block.Rows[0].Cells[0]
	assert.Equal(t, style.AlignTop, cell.Settings.VerticalAlign)
	assert.Equal(t, style.HorizontalAlign(""), cell.Settings.HorizontalAlign)
	assert.Nil(t, cell.Settings.BorderRadius)
	assert.Equal(t, style.BackgroundImage{URL: "https://x.test/c.png", Repeat: style.RepeatNoRepeat, Size: style.SizeCover, Position: style.PositionCenter}, *cell.Settings.BackgroundImage)

	img := cell.Atoms[3].(*model.ImageAtom)
	assert.Nil(t, img.Width)
	assert.Nil(t, img.Height)
	assert.Equal(t, 4.0, *img.BorderRadius)

	menu := cell.Atoms[4].(*model.MenuAtom)
	assert.Equal(t, model.MenuItemImage, menu.ItemType)
	assert.IsType(t, &model.ImageMenuItem{}, menu.Items[1])
	assert.Equal(t, "Blog", menu.Items[1].(*model.ImageMenuItem).Name)

	assert.Equal(t, style.SizeCover, out.Editor.General.Background.Size)
	assert.Equal(t, style.Insets{0, 1, 2, 3}, out.Editor.General.Padding)
	assert.NotContains(t, cell.Atoms[0].(*model.TextAtom).Value, "script")

	assert.Equal(t, style.VerticalAlign("baseline"), in.Canvas.Components[0].Block.Rows[0].Cells[0].Settings.VerticalAlign, "input must not change")
}

func TestSanitizeIdempotent(t *testing.T) {
	once := Sanitize(dirtyPayload())
	assert.Equal(t, once, Sanitize(once))
}
