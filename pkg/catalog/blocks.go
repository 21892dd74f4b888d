package catalog

import (
	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/style"
)

func themedBlock(p Palette) (*model.Block, *model.Cell) {
	b := model.NewBlock("")
	b.Settings.BackgroundColor = p.Background
	return b, b.Rows[0].Cells[0]
}

func textAtom(p Palette, html string) *model.TextAtom {
	a := model.NewAtom(model.AtomText).(*model.TextAtom)
	a.Value = html
	a.Color = p.Text
	return a
}

func header(p Palette) *model.Block {
	b, logo := themedBlock(p)
	logo.Settings.VerticalAlign = style.AlignMiddle
	img := model.NewAtom(model.AtomImage).(*model.ImageAtom)
	img.Src = "https://placehold.co/120x40"
	img.Alt = "Logo"
	img.Width = model.Float(120)
	logo.Atoms = append(logo.Atoms, img)

	nav := model.NewCell()
	nav.Settings.VerticalAlign = style.AlignMiddle
	nav.Settings.HorizontalAlign = style.AlignRight
	m := model.NewAtom(model.AtomMenu).(*model.MenuAtom)
	for _, it := range m.Items {
		it.(*model.TextMenuItem).Color = p.Text
	}
	nav.Atoms = append(nav.Atoms, m)
	b.Rows[0].Cells = append(b.Rows[0].Cells, nav)
	return b
}

func text(p Palette) *model.Block {
	b, cell := themedBlock(p)
	cell.Atoms = append(cell.Atoms,
		textAtom(p, "<h2>A clear headline</h2>"),
		textAtom(p, "<p>Tell your readers what this email is about in a sentence or two.</p>"),
	)
	return b
}

func button(p Palette) *model.Block {
	b, cell := themedBlock(p)
	cell.Settings.HorizontalAlign = style.AlignCenter
	btn := model.NewAtom(model.AtomButton).(*model.ButtonAtom)
	btn.BackgroundColor = p.Accent
	btn.Color = p.AccentText
	cell.Atoms = append(cell.Atoms, btn)
	return b
}

func image(p Palette) *model.Block {
	b, cell := themedBlock(p)
	cell.Atoms = append(cell.Atoms, model.NewAtom(model.AtomImage))
	return b
}

func divider(p Palette) *model.Block {
	b, cell := themedBlock(p)
	d := model.NewAtom(model.AtomDivider).(*model.DividerAtom)
	d.Color = p.Border
	cell.Atoms = append(cell.Atoms, d)
	return b
}

func menu(p Palette) *model.Block {
	b, cell := themedBlock(p)
	cell.Settings.HorizontalAlign = style.AlignCenter
	m := model.NewAtom(model.AtomMenu).(*model.MenuAtom)
	m.Items = append(m.Items, model.NewTextMenuItem("Contact", "https://example.com/contact"))
	for _, it := range m.Items {
		it.(*model.TextMenuItem).Color = p.Accent
	}
	cell.Atoms = append(cell.Atoms, m)
	return b
}

func twoColumn(p Palette) *model.Block {
	b, left := themedBlock(p)
	b.Rows[0].Settings.Gap = 16
	img := model.NewAtom(model.AtomImage).(*model.ImageAtom)
	img.Src = "https://placehold.co/280x180"
	left.Atoms = append(left.Atoms, img)

	right := model.NewCell()
	right.Settings.VerticalAlign = style.AlignMiddle
	right.Atoms = append(right.Atoms,
		textAtom(p, "<h3>Feature</h3>"),
		textAtom(p, "<p>Describe the feature next to its picture.</p>"),
	)
	b.Rows[0].Cells = append(b.Rows[0].Cells, right)
	return b
}

func footer(p Palette) *model.Block {
	b, cell := themedBlock(p)
	b.Settings.BackgroundColor = p.Surface
	cell.Settings.HorizontalAlign = style.AlignCenter

	social := model.NewAtom(model.AtomMenu).(*model.MenuAtom)
	social.ItemType = model.MenuItemImage
	social.Items = model.MenuItems{
		model.NewImageMenuItem("Mastodon", "https://example.com/mastodon", "https://placehold.co/24x24"),
		model.NewImageMenuItem("GitHub", "https://example.com/github", "https://placehold.co/24x24"),
	}
	fine := textAtom(p, `<p style="font-size: 12px">You are receiving this email because you signed up. <a href="https://example.com/unsubscribe">Unsubscribe</a></p>`)
	fine.Color = p.Muted
	cell.Atoms = append(cell.Atoms, social, fine)
	return b
}
