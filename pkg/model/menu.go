package model

import (
	"encoding/json"
	"fmt"
)

// MenuItemType is the discriminator of the menu item tagged union.
type MenuItemType string

const (
	MenuItemText  MenuItemType = "text"
	MenuItemImage MenuItemType = "image"
)

// Valid reports whether t is a supported item type.
func (t MenuItemType) Valid() bool {
	return t == MenuItemText || t == MenuItemImage
}

// MenuItem is one entry of a menu atom.
type MenuItem interface {
	ItemType() MenuItemType
	CloneItem() MenuItem
}

// TextMenuItem is a text link.
type TextMenuItem struct {
	Text     string  `json:"text"`
	Link     string  `json:"link"`
	Color    string  `json:"color"`
	FontSize float64 `json:"fontSize"`
}

// ImageMenuItem is an icon link, typically a social network badge.
type ImageMenuItem struct {
	Name   string  `json:"name"`
	Link   string  `json:"link"`
	URL    string  `json:"url"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Alt    string  `json:"alt,omitempty"`
}

// NewTextMenuItem returns a text item with the editor defaults.
func NewTextMenuItem(text, link string) *TextMenuItem {
	return &TextMenuItem{Text: text, Link: link, Color: "#1f2933", FontSize: 14}
}

// NewImageMenuItem returns an image item with the editor defaults.
func NewImageMenuItem(name, link, url string) *ImageMenuItem {
	return &ImageMenuItem{Name: name, Link: link, URL: url, Width: 24, Height: 24, Alt: name}
}

func (*TextMenuItem) ItemType() MenuItemType  { return MenuItemText }
func (*ImageMenuItem) ItemType() MenuItemType { return MenuItemImage }

func (i *TextMenuItem) CloneItem() MenuItem {
	out := *i
	return &out
}

func (i *ImageMenuItem) CloneItem() MenuItem {
	out := *i
	return &out
}

func (i *TextMenuItem) MarshalJSON() ([]byte, error) {
	type alias TextMenuItem
	return json.Marshal(struct {
		Type MenuItemType `json:"type"`
		*alias
	}{MenuItemText, (*alias)(i)})
}

func (i *ImageMenuItem) MarshalJSON() ([]byte, error) {
	type alias ImageMenuItem
	return json.Marshal(struct {
		Type MenuItemType `json:"type"`
		*alias
	}{MenuItemImage, (*alias)(i)})
}

// MenuItems is an ordered item list that decodes its tagged-union elements.
type MenuItems []MenuItem

// Clone deep-copies the list.
func (items MenuItems) Clone() MenuItems {
	out := make(MenuItems, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, it.CloneItem())
	}
	return out
}

func (items *MenuItems) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(MenuItems, 0, len(raws))
	for n, raw := range raws {
		var head struct {
			Type MenuItemType `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return err
		}
		var it MenuItem
		switch head.Type {
		case MenuItemText:
			it = &TextMenuItem{}
		case MenuItemImage:
			it = &ImageMenuItem{}
		default:
			return fmt.Errorf("items[%d]: %w: %q", n, ErrUnknownMenuItemType, head.Type)
		}
		if err := json.Unmarshal(raw, it); err != nil {
			return err
		}
		out = append(out, it)
	}
	*items = out
	return nil
}

// ConvertMenuItem returns it unchanged when it already has type t. Otherwise
// it synthesizes an item of type t from the fields the two kinds share: a
// text item's text names an image item, and an image item's name (or alt)
// becomes a text item's text.
func ConvertMenuItem(it MenuItem, t MenuItemType) MenuItem {
	switch src := it.(type) {
	case *TextMenuItem:
		if t == MenuItemImage {
			return NewImageMenuItem(src.Text, src.Link, "")
		}
	case *ImageMenuItem:
		if t == MenuItemText {
			text := src.Name
			if text == "" {
				text = src.Alt
			}
			return NewTextMenuItem(text, src.Link)
		}
	case nil:
		if t == MenuItemImage {
			return NewImageMenuItem("", "", "")
		}
		return NewTextMenuItem("", "")
	}
	return it
}
