package model

import (
	"encoding/json"
	"fmt"

	"tableflip.dev/postcard/pkg/style"
)

// AtomType is the discriminator of the atom tagged union.
type AtomType string

const (
	AtomText    AtomType = "text"
	AtomButton  AtomType = "button"
	AtomDivider AtomType = "divider"
	AtomImage   AtomType = "image"
	AtomMenu    AtomType = "menu"
)

// AllAtomTypes returns the supported atom tags.
func AllAtomTypes() []AtomType {
	return []AtomType{AtomText, AtomButton, AtomDivider, AtomImage, AtomMenu}
}

// ParseAtomType converts raw to an AtomType.
func ParseAtomType(raw string) (AtomType, error) {
	for _, t := range AllAtomTypes() {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAtomType, raw)
}

// Atom is a leaf content unit inside a cell.
type Atom interface {
	AtomID() string
	SetAtomID(id string)
	Type() AtomType
	AtomSpacing() *style.Spacing
	SetAtomSpacing(s *style.Spacing)
	CloneAtom() Atom
}

// AtomBase carries the fields every atom shares.
type AtomBase struct {
	ID      string         `json:"id"`
	Spacing *style.Spacing `json:"spacing,omitempty"`
}

func (a *AtomBase) AtomID() string                  { return a.ID }
func (a *AtomBase) SetAtomID(id string)             { a.ID = id }
func (a *AtomBase) AtomSpacing() *style.Spacing     { return a.Spacing }
func (a *AtomBase) SetAtomSpacing(s *style.Spacing) { a.Spacing = s }

func (a AtomBase) clone() AtomBase {
	out := AtomBase{ID: a.ID}
	if a.Spacing != nil {
		s := a.Spacing.Clone()
		out.Spacing = &s
	}
	return out
}

// TextAtom holds rich text as an HTML fragment.
type TextAtom struct {
	AtomBase
	Value string `json:"value"`
	Color string `json:"color"`
}

// ButtonAtom is a call-to-action link rendered as a button.
type ButtonAtom struct {
	AtomBase
	Text            string       `json:"text"`
	Link            string       `json:"link"`
	BackgroundColor string       `json:"backgroundColor"`
	Color           string       `json:"color"`
	FontSize        float64      `json:"fontSize"`
	BorderRadius    float64      `json:"borderRadius"`
	Padding         style.Insets `json:"padding"`
}

// DividerAtom is a horizontal rule.
type DividerAtom struct {
	AtomBase
	Color  string  `json:"color"`
	Height float64 `json:"height"`
}

// ImageAtom is an image, optionally linked.
type ImageAtom struct {
	AtomBase
	Src          string   `json:"src"`
	Link         string   `json:"link,omitempty"`
	Alt          string   `json:"alt,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	BorderRadius *float64 `json:"borderRadius,omitempty"`
}

// MenuAtom is a horizontal list of text or image links.
type MenuAtom struct {
	AtomBase
	ItemType MenuItemType `json:"itemType,omitempty"`
	Gap      *float64     `json:"gap,omitempty"`
	Items    MenuItems    `json:"items"`
}

func (*TextAtom) Type() AtomType    { return AtomText }
func (*ButtonAtom) Type() AtomType  { return AtomButton }
func (*DividerAtom) Type() AtomType { return AtomDivider }
func (*ImageAtom) Type() AtomType   { return AtomImage }
func (*MenuAtom) Type() AtomType    { return AtomMenu }

func (a *TextAtom) CloneAtom() Atom {
	out := *a
	out.AtomBase = a.AtomBase.clone()
	return &out
}

func (a *ButtonAtom) CloneAtom() Atom {
	out := *a
	out.AtomBase = a.AtomBase.clone()
	return &out
}

func (a *DividerAtom) CloneAtom() Atom {
	out := *a
	out.AtomBase = a.AtomBase.clone()
	return &out
}

func (a *ImageAtom) CloneAtom() Atom {
	out := *a
	out.AtomBase = a.AtomBase.clone()
	out.Width = cloneFloat(a.Width)
	out.Height = cloneFloat(a.Height)
	out.BorderRadius = cloneFloat(a.BorderRadius)
	return &out
}

func (a *MenuAtom) CloneAtom() Atom {
	out := *a
	out.AtomBase = a.AtomBase.clone()
	out.Gap = cloneFloat(a.Gap)
	out.Items = a.Items.Clone()
	return &out
}

// EffectiveItemType is the declared item type, else the first item's tag,
// else text.
func (a *MenuAtom) EffectiveItemType() MenuItemType {
	if a.ItemType.Valid() {
		return a.ItemType
	}
	if len(a.Items) > 0 && a.Items[0] != nil {
		return a.Items[0].ItemType()
	}
	return MenuItemText
}

// The MarshalJSON methods add the "type" discriminator next to the flattened fields.

func (a *TextAtom) MarshalJSON() ([]byte, error) {
	type alias TextAtom
	return json.Marshal(struct {
		Type AtomType `json:"type"`
		*alias
	}{AtomText, (*alias)(a)})
}

func (a *ButtonAtom) MarshalJSON() ([]byte, error) {
	type alias ButtonAtom
	return json.Marshal(struct {
		Type AtomType `json:"type"`
		*alias
	}{AtomButton, (*alias)(a)})
}

func (a *DividerAtom) MarshalJSON() ([]byte, error) {
	type alias DividerAtom
	return json.Marshal(struct {
		Type AtomType `json:"type"`
		*alias
	}{AtomDivider, (*alias)(a)})
}

func (a *ImageAtom) MarshalJSON() ([]byte, error) {
	type alias ImageAtom
	return json.Marshal(struct {
		Type AtomType `json:"type"`
		*alias
	}{AtomImage, (*alias)(a)})
}

func (a *MenuAtom) MarshalJSON() ([]byte, error) {
	type alias MenuAtom
	return json.Marshal(struct {
		Type AtomType `json:"type"`
		*alias
	}{AtomMenu, (*alias)(a)})
}

// Atoms is an ordered atom list that decodes its tagged-union elements.
type Atoms []Atom

// Clone deep-copies the list, keeping ids.
func (as Atoms) Clone() Atoms {
	out := make(Atoms, 0, len(as))
	for _, a := range as {
		if a == nil {
			continue
		}
		out = append(out, a.CloneAtom())
	}
	return out
}

func (as *Atoms) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Atoms, 0, len(raws))
	for i, raw := range raws {
		a, err := UnmarshalAtom(raw)
		if err != nil {
			return fmt.Errorf("atoms[%d]: %w", i, err)
		}
		out = append(out, a)
	}
	*as = out
	return nil
}

// UnmarshalAtom decodes one atom, dispatching on its "type" field.
func UnmarshalAtom(data []byte) (Atom, error) {
	var head struct {
		Type AtomType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var a Atom
	switch head.Type {
	case AtomText:
		a = &TextAtom{}
	case AtomButton:
		a = &ButtonAtom{}
	case AtomDivider:
		a = &DividerAtom{}
	case AtomImage:
		a = &ImageAtom{}
	case AtomMenu:
		a = &MenuAtom{Items: MenuItems{}}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAtomType, head.Type)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, err
	}
	if m, ok := a.(*MenuAtom); ok && m.Items == nil {
		m.Items = MenuItems{}
	}
	return a, nil
}

// NewAtom returns a default-initialized atom of type t with a fresh id, or
// nil for an unknown type.
func NewAtom(t AtomType) Atom {
	base := AtomBase{ID: NewID()}
	switch t {
	case AtomText:
		return &TextAtom{AtomBase: base, Value: "<p>Write something here</p>", Color: "#1f2933"}
	case AtomButton:
		return &ButtonAtom{
			AtomBase:        base,
			Text:            "Click here",
			Link:            "https://example.com",
			BackgroundColor: "#2563eb",
			Color:           "#ffffff",
			FontSize:        16,
			BorderRadius:    4,
			Padding:         style.Symmetric(12, 24),
		}
	case AtomDivider:
		return &DividerAtom{AtomBase: base, Color: "#e5e7eb", Height: 1}
	case AtomImage:
		return &ImageAtom{AtomBase: base, Src: "https://placehold.co/600x200", Alt: "Image"}
	case AtomMenu:
		return &MenuAtom{
			AtomBase: base,
			ItemType: MenuItemText,
			Gap:      Float(16),
			Items: MenuItems{
				NewTextMenuItem("Home", "https://example.com"),
				NewTextMenuItem("Blog", "https://example.com/blog"),
			},
		}
	default:
		return nil
	}
}
