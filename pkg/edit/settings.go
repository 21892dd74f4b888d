package edit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/style"
)

// Scope groups setting keys by what they address.
type Scope string

const (
	// ScopeSettings addresses a block, row, cell or atom.
	ScopeSettings Scope = "v2-settings"
	// ScopeGeneral addresses the template-wide settings.
	ScopeGeneral Scope = "v2-general"
)

// Field names a setting. Menu items are addressed as items.<index>.<field>.
type Field string

const (
	FieldMargin             Field = "spacing.margin"
	FieldPadding            Field = "spacing.padding"
	// FieldInnerPadding is a button's padding, the page padding, or
	// shorthand for FieldPadding elsewhere.
	FieldInnerPadding       Field = "padding"
	FieldBackgroundColor    Field = "backgroundColor"
	FieldBackgroundImage    Field = "backgroundImage"
	FieldBackgroundRepeat   Field = "backgroundImage.repeat"
	FieldBackgroundSize     Field = "backgroundImage.size"
	FieldBackgroundPosition Field = "backgroundImage.position"

	FieldLabel           Field = "label"
	FieldHeight          Field = "height"
	FieldGap             Field = "gap"
	FieldLink            Field = "link"
	FieldVerticalAlign   Field = "verticalAlign"
	FieldHorizontalAlign Field = "horizontalAlign"
	FieldBorderRadius    Field = "borderRadius"
	FieldWidth           Field = "width"

	FieldValue           Field = "value"
	FieldColor           Field = "color"
	FieldText            Field = "text"
	FieldFontSize        Field = "fontSize"
	FieldSrc             Field = "src"
	FieldAlt             Field = "alt"
	FieldItemType        Field = "itemType"
	FieldName            Field = "name"
	FieldURL             Field = "url"
	FieldFont            Field = "font"
	FieldPreviewText     Field = "previewText"
	FieldGeneralColor    Field = "background.color"
	FieldGeneralImage    Field = "background.image"
	FieldGeneralRepeat   Field = "background.repeat"
	FieldGeneralSize     Field = "background.size"
	FieldGeneralPosition Field = "background.position"
)

// ErrMalformedKey is returned by ParseSettingKey for keys it cannot split.
var ErrMalformedKey = errors.New("edit: malformed setting key")

// SettingKey addresses one setting of one node, or of the general settings
// when Scope is ScopeGeneral.
type SettingKey struct {
	Scope    Scope
	Level    model.Level
	TargetID string
	Field    Field
}

// String renders the key in its delimited form.
func (k SettingKey) String() string {
	if k.Scope == ScopeGeneral {
		return fmt.Sprintf("%s::%s", k.Scope, k.Field)
	}
	return fmt.Sprintf("%s::%s::%s::%s", k.Scope, k.Level, k.TargetID, k.Field)
}

// ParseSettingKey reads the delimited key forms
//
//	{scope}::{level}::{targetId}::{field}
//	{scope}::{atomId}::{field...}
//	v2-general::{field...}
//
// Multi-segment fields are joined with dots.
func ParseSettingKey(raw string) (SettingKey, error) {
	parts := strings.Split(strings.TrimSpace(raw), "::")
	for _, p := range parts {
		if p == "" {
			return SettingKey{}, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
		}
	}
	if len(parts) >= 2 && Scope(parts[0]) == ScopeGeneral {
		return SettingKey{Scope: ScopeGeneral, Field: Field(strings.Join(parts[1:], "."))}, nil
	}
	if len(parts) >= 4 {
		if level, ok := model.ParseLevel(parts[1]); ok {
			return SettingKey{
				Scope:    Scope(parts[0]),
				Level:    level,
				TargetID: parts[2],
				Field:    Field(strings.Join(parts[3:], ".")),
			}, nil
		}
	}
	if len(parts) >= 3 {
		return SettingKey{
			Scope:    Scope(parts[0]),
			Level:    model.LevelAtom,
			TargetID: parts[1],
			Field:    Field(strings.Join(parts[2:], ".")),
		}, nil
	}
	return SettingKey{}, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
}

// UpdateSetting coerces value to the shape of the addressed field and stores
// it. It reports false when the key does not resolve or the value cannot be
// coerced.
func UpdateSetting(doc *model.Document, key SettingKey, value any) bool {
	if doc == nil {
		return false
	}
	switch key.Scope {
	case ScopeGeneral:
		return setGeneral(&doc.General, key.Field, value)
	case ScopeSettings:
	default:
		return false
	}
	ref, ok := doc.FindNode(key.TargetID)
	if !ok || ref.Level != key.Level {
		return false
	}
	switch ref.Level {
	case model.LevelBlock:
		return setBlock(ref.Block, key.Field, value)
	case model.LevelRow:
		return setRow(ref.Row, key.Field, value)
	case model.LevelCell:
		return setCell(ref.Cell, key.Field, value)
	case model.LevelAtom:
		return setAtom(ref.Atom, key.Field, value)
	}
	return false
}

func setSpacing(s *style.Spacing, field Field, value any) bool {
	var side **style.Insets
	switch field {
	case FieldMargin, "margin":
		side = &s.Margin
	case FieldPadding, FieldInnerPadding:
		side = &s.Padding
	default:
		return false
	}
	if isEmpty(value) {
		*side = nil
		return true
	}
	in, ok := toInsets(value)
	if !ok {
		return false
	}
	*side = &in
	return true
}

func setBackground(color *string, img **style.BackgroundImage, field Field, value any) bool {
	switch field {
	case FieldBackgroundColor:
		c, ok := toColor(value)
		if ok {
			*color = c
		}
		return ok
	case FieldBackgroundImage, "backgroundImage.url":
		if isEmpty(value) {
			*img = nil
			return true
		}
		url, ok := toString(value)
		if !ok {
			return false
		}
		if *img == nil {
			bg := style.DefaultBackgroundImage(url)
			*img = &bg
		} else {
			(*img).URL = url
		}
		return true
	case FieldBackgroundRepeat, FieldBackgroundSize, FieldBackgroundPosition:
		if *img == nil {
			return false
		}
		raw, _ := toString(value)
		return setBackgroundEnum(*img, field, raw)
	}
	return false
}

func setBackgroundEnum(bg *style.BackgroundImage, field Field, raw string) bool {
	switch field {
	case FieldBackgroundRepeat, FieldGeneralRepeat:
		r, err := style.ParseRepeat(raw)
		if err != nil {
			return false
		}
		bg.Repeat = r
	case FieldBackgroundSize, FieldGeneralSize:
		s, err := style.ParseSize(raw)
		if err != nil {
			return false
		}
		bg.Size = s
	case FieldBackgroundPosition, FieldGeneralPosition:
		p, err := style.ParsePosition(raw)
		if err != nil {
			return false
		}
		bg.Position = p
	default:
		return false
	}
	return true
}

func setBlock(b *model.Block, field Field, value any) bool {
	s := &b.Settings
	if field == FieldLabel {
		label, ok := toString(value)
		if ok {
			b.Label = label
		}
		return ok
	}
	return setSpacing(&s.Spacing, field, value) ||
		setBackground(&s.BackgroundColor, &s.BackgroundImage, field, value)
}

func setRow(r *model.Row, field Field, value any) bool {
	s := &r.Settings
	switch field {
	case FieldHeight:
		return setOptional(&s.Height, value)
	case FieldGap:
		s.Gap = size(value, 0)
		return true
	}
	return setSpacing(&s.Spacing, field, value) ||
		setBackground(&s.BackgroundColor, &s.BackgroundImage, field, value)
}

func setCell(c *model.Cell, field Field, value any) bool {
	s := &c.Settings
	raw, _ := toString(value)
	switch field {
	case FieldLink:
		s.Link = strings.TrimSpace(raw)
		return true
	case FieldVerticalAlign:
		v, err := style.ParseVerticalAlign(raw)
		if err != nil {
			return false
		}
		s.VerticalAlign = v
		return true
	case FieldHorizontalAlign:
		if isEmpty(value) {
			s.HorizontalAlign = ""
			return true
		}
		h, err := style.ParseHorizontalAlign(raw)
		if err != nil {
			return false
		}
		s.HorizontalAlign = h
		return true
	case FieldBorderRadius:
		return setOptional(&s.BorderRadius, value)
	case FieldWidth:
		return setOptional(&s.Width, value)
	case FieldHeight:
		return setOptional(&s.Height, value)
	}
	return setSpacing(&s.Spacing, field, value) ||
		setBackground(&s.BackgroundColor, &s.BackgroundImage, field, value)
}

// setOptional clears dst on empty input and otherwise stores a valid size.
func setOptional(dst **float64, value any) bool {
	if isEmpty(value) {
		*dst = nil
		return true
	}
	f := optionalSize(value)
	if f == nil {
		return false
	}
	*dst = f
	return true
}

func setColor(dst *string, value any) bool {
	c, ok := toColor(value)
	if ok {
		*dst = c
	}
	return ok
}

func setString(dst *string, value any) bool {
	s, ok := toString(value)
	if ok {
		*dst = s
	}
	return ok
}

func setAtomSpacing(a model.Atom, field Field, value any) bool {
	sp := a.AtomSpacing()
	if sp == nil {
		sp = &style.Spacing{}
	}
	if !setSpacing(sp, field, value) {
		return false
	}
	if sp.Margin == nil && sp.Padding == nil {
		sp = nil
	}
	a.SetAtomSpacing(sp)
	return true
}

func setAtom(a model.Atom, field Field, value any) bool {
	switch field {
	case FieldMargin, FieldPadding, "margin":
		return setAtomSpacing(a, field, value)
	case FieldInnerPadding:
		if a.Type() != model.AtomButton {
			return setAtomSpacing(a, field, value)
		}
	}
	switch t := a.(type) {
	case *model.TextAtom:
		switch field {
		case FieldValue:
			return setString(&t.Value, value)
		case FieldColor:
			return setColor(&t.Color, value)
		}
	case *model.ButtonAtom:
		switch field {
		case FieldText:
			return setString(&t.Text, value)
		case FieldLink:
			return setString(&t.Link, value)
		case FieldBackgroundColor:
			return setColor(&t.BackgroundColor, value)
		case FieldColor:
			return setColor(&t.Color, value)
		case FieldFontSize:
			t.FontSize = size(value, 16)
			return true
		case FieldBorderRadius:
			t.BorderRadius = size(value, 0)
			return true
		case FieldInnerPadding:
			in, ok := toInsets(value)
			if ok {
				t.Padding = in
			}
			return ok
		}
	case *model.DividerAtom:
		switch field {
		case FieldColor:
			return setColor(&t.Color, value)
		case FieldHeight:
			t.Height = size(value, 1)
			return true
		}
	case *model.ImageAtom:
		switch field {
		case FieldSrc:
			return setString(&t.Src, value)
		case FieldLink:
			return setString(&t.Link, value)
		case FieldAlt:
			return setString(&t.Alt, value)
		case FieldWidth:
			return setOptional(&t.Width, value)
		case FieldHeight:
			return setOptional(&t.Height, value)
		case FieldBorderRadius:
			return setOptional(&t.BorderRadius, value)
		}
	case *model.MenuAtom:
		return setMenu(t, field, value)
	}
	return false
}

func setMenu(m *model.MenuAtom, field Field, value any) bool {
	switch field {
	case FieldItemType:
		raw, _ := toString(value)
		it := model.MenuItemType(raw)
		if !it.Valid() {
			return false
		}
		m.ItemType = it
		for i, item := range m.Items {
			m.Items[i] = model.ConvertMenuItem(item, it)
		}
		return true
	case FieldGap:
		return setOptional(&m.Gap, value)
	}

	rest, ok := strings.CutPrefix(string(field), "items.")
	if !ok {
		return false
	}
	idx, sub, ok := strings.Cut(rest, ".")
	if !ok {
		return false
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(m.Items) {
		return false
	}
	switch item := m.Items[i].(type) {
	case *model.TextMenuItem:
		switch Field(sub) {
		case FieldText:
			return setString(&item.Text, value)
		case FieldLink:
			return setString(&item.Link, value)
		case FieldColor:
			return setColor(&item.Color, value)
		case FieldFontSize:
			item.FontSize = size(value, 14)
			return true
		}
	case *model.ImageMenuItem:
		switch Field(sub) {
		case FieldName:
			return setString(&item.Name, value)
		case FieldLink:
			return setString(&item.Link, value)
		case FieldURL:
			return setString(&item.URL, value)
		case FieldAlt:
			return setString(&item.Alt, value)
		case FieldWidth:
			item.Width = size(value, 24)
			return true
		case FieldHeight:
			item.Height = size(value, 24)
			return true
		}
	}
	return false
}

func setGeneral(g *model.General, field Field, value any) bool {
	bg := &g.Background
	switch field {
	case FieldInnerPadding:
		in, ok := toInsets(value)
		if ok {
			g.Padding = in
		}
		return ok
	case FieldFont:
		return setString(&g.Font, value)
	case FieldPreviewText:
		return setString(&g.PreviewText, value)
	case FieldGeneralColor:
		return setColor(&bg.Color, value)
	case FieldGeneralImage:
		if isEmpty(value) {
			bg.Image = ""
			return true
		}
		return setString(&bg.Image, value)
	case FieldGeneralRepeat, FieldGeneralSize, FieldGeneralPosition:
		raw, _ := toString(value)
		desc := style.BackgroundImage{URL: bg.Image, Repeat: bg.Repeat, Size: bg.Size, Position: bg.Position}
		if !setBackgroundEnum(&desc, field, raw) {
			return false
		}
		bg.Repeat, bg.Size, bg.Position = desc.Repeat, desc.Size, desc.Position
		return true
	}
	return false
}
