package templateio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/style"
)

// Validate checks a parsed payload against the template schema and returns
// every defect it finds. A value of the wrong shape is reported once and not
// descended into.
func Validate(v any, limits Limits) Issues {
	val := &validator{limits: limits.withDefaults()}
	val.payload("$", v)
	return val.issues
}

// ValidateText checks raw JSON the way an import would: size gate, parse,
// migration, then Validate.
func ValidateText(raw []byte, limits Limits) Issues {
	v, issues := parse(raw, limits)
	if len(issues) > 0 {
		return issues
	}
	return Validate(Migrate(v), limits)
}

// parse enforces the byte limit before the parser ever sees raw.
func parse(raw []byte, limits Limits) (any, Issues) {
	limits = limits.withDefaults()
	if len(raw) > limits.MaxBytes {
		return nil, Issues{{
			Path:    "$",
			Message: fmt.Sprintf("payload is %d bytes, exceeding the %d byte limit", len(raw), limits.MaxBytes),
		}}
	}
	var v any
	if err := json.Unmarshal(bytes.TrimSpace(raw), &v); err != nil {
		return nil, Issues{{Path: "$", Message: "Invalid JSON format"}}
	}
	return v, nil
}

type validator struct {
	limits Limits
	issues Issues
}

func (v *validator) add(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func join(path, key string) string {
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func (v *validator) object(path string, val any) (map[string]any, bool) {
	obj, ok := val.(map[string]any)
	if !ok {
		v.add(path, "must be an object")
	}
	return obj, ok
}

func (v *validator) array(path string, val any) ([]any, bool) {
	list, ok := val.([]any)
	if !ok {
		v.add(path, "must be an array")
	}
	return list, ok
}

// field returns the member key of obj. A missing or null member is reported
// when required. Members whose name matches key only under case folding are
// reported too, since the decoder would still bind them to key.
func (v *validator) field(obj map[string]any, path, key string, required bool) (any, bool) {
	v.folded(obj, path, key)
	val, ok := obj[key]
	if !ok || val == nil {
		if required {
			v.add(join(path, key), "is required")
		}
		return nil, false
	}
	return val, true
}

func (v *validator) folded(obj map[string]any, path, key string) {
	var names []string
	for k := range obj {
		if k != key && strings.EqualFold(k, key) {
			names = append(names, k)
		}
	}
	slices.Sort(names)
	for _, k := range names {
		v.add(join(path, k), "unknown member, did you mean %q", key)
	}
}

func (v *validator) str(obj map[string]any, path, key string, required bool) (string, bool) {
	val, ok := v.field(obj, path, key, required)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	if !ok {
		v.add(join(path, key), "must be a string")
	}
	return s, ok
}

func number(val any) (float64, bool) {
	var f float64
	switch n := val.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	return f, !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (v *validator) num(obj map[string]any, path, key string, required bool) (float64, bool) {
	val, ok := v.field(obj, path, key, required)
	if !ok {
		return 0, false
	}
	f, ok := number(val)
	if !ok {
		v.add(join(path, key), "must be a finite number")
	}
	return f, ok
}

func (v *validator) enum(obj map[string]any, path, key string, required bool, allowed ...string) {
	s, ok := v.str(obj, path, key, required)
	if !ok {
		return
	}
	for _, a := range allowed {
		if s == a {
			return
		}
	}
	v.add(join(path, key), "must be one of %s, got %q", strings.Join(allowed, ", "), s)
}

func enumValues[T ~string](all []T) []string {
	out := make([]string, len(all))
	for i, a := range all {
		out[i] = string(a)
	}
	return out
}

var (
	repeats   = enumValues(style.AllRepeats())
	sizes     = enumValues(style.AllSizes())
	positions = enumValues(style.AllPositions())
)

func (v *validator) insets(obj map[string]any, path, key string, required bool) {
	val, ok := v.field(obj, path, key, required)
	if !ok {
		return
	}
	p := join(path, key)
	list, ok := val.([]any)
	if !ok || len(list) != 4 {
		v.add(p, "must be an array of 4 numbers")
		return
	}
	for i, e := range list {
		if _, ok := number(e); !ok {
			v.add(index(p, i), "must be a finite number")
		}
	}
}

func (v *validator) spacing(obj map[string]any, path, key string, required bool) {
	val, ok := v.field(obj, path, key, required)
	if !ok {
		return
	}
	p := join(path, key)
	sp, ok := v.object(p, val)
	if !ok {
		return
	}
	v.insets(sp, p, "margin", false)
	v.insets(sp, p, "padding", false)
}

func (v *validator) backgroundImage(obj map[string]any, path string) {
	val, ok := v.field(obj, path, "backgroundImage", false)
	if !ok {
		return
	}
	p := join(path, "backgroundImage")
	img, ok := v.object(p, val)
	if !ok {
		return
	}
	v.str(img, p, "url", true)
	v.enum(img, p, "repeat", true, repeats...)
	v.enum(img, p, "size", true, sizes...)
	v.enum(img, p, "position", true, positions...)
}

// version reports a wrong version tag without stopping the pass.
func (v *validator) version(obj map[string]any, path string) {
	n, ok := v.num(obj, path, "version", true)
	if ok && n != model.Version {
		v.add(join(path, "version"), "unsupported version %v, expected %d", n, model.Version)
	}
}

func (v *validator) payload(path string, val any) {
	root, ok := v.object(path, val)
	if !ok {
		return
	}
	v.version(root, path)

	if val, ok := v.field(root, path, "meta", true); ok {
		p := join(path, "meta")
		if meta, ok := v.object(p, val); ok {
			v.str(meta, p, "id", true)
			v.str(meta, p, "title", true)
			v.str(meta, p, "createdAt", true)
			v.str(meta, p, "updatedAt", true)
			v.str(meta, p, "appVersion", false)
		}
	}

	if val, ok := v.field(root, path, "editor", true); ok {
		p := join(path, "editor")
		if editor, ok := v.object(p, val); ok {
			if val, ok := v.field(editor, p, "general", true); ok {
				v.general(join(p, "general"), val)
			}
		}
	}

	if val, ok := v.field(root, path, "canvas", true); ok {
		p := join(path, "canvas")
		if canvas, ok := v.object(p, val); ok {
			v.components(canvas, p)
		}
	}
}

func (v *validator) general(path string, val any) {
	g, ok := v.object(path, val)
	if !ok {
		return
	}
	v.insets(g, path, "padding", true)
	if val, ok := v.field(g, path, "background", true); ok {
		p := join(path, "background")
		if bg, ok := v.object(p, val); ok {
			v.str(bg, p, "color", true)
			v.str(bg, p, "image", false)
			v.enum(bg, p, "repeat", true, repeats...)
			v.enum(bg, p, "size", true, sizes...)
			v.enum(bg, p, "position", true, positions...)
		}
	}
	v.str(g, path, "font", true)
	v.str(g, path, "previewText", true)
}

func (v *validator) components(canvas map[string]any, path string) {
	val, ok := v.field(canvas, path, "components", true)
	if !ok {
		return
	}
	p := join(path, "components")
	list, ok := v.array(p, val)
	if !ok {
		return
	}
	if len(list) > v.limits.MaxComponents {
		v.add(p, "has %d components, exceeding the limit of %d", len(list), v.limits.MaxComponents)
		return
	}
	for i, c := range list {
		cp := index(p, i)
		comp, ok := v.object(cp, c)
		if !ok {
			continue
		}
		v.str(comp, cp, "id", true)
		v.version(comp, cp)
		if val, ok := v.field(comp, cp, "block", true); ok {
			v.block(join(cp, "block"), val)
		}
	}
}

func (v *validator) block(path string, val any) {
	b, ok := v.object(path, val)
	if !ok {
		return
	}
	v.str(b, path, "id", true)
	v.str(b, path, "label", true)
	if s, p, ok := v.settings(b, path); ok {
		v.commonSettings(s, p)
	}
	v.rows(b, path, true)
}

func (v *validator) settings(node map[string]any, path string) (map[string]any, string, bool) {
	val, ok := v.field(node, path, "settings", true)
	if !ok {
		return nil, "", false
	}
	p := join(path, "settings")
	s, ok := v.object(p, val)
	return s, p, ok
}

func (v *validator) commonSettings(s map[string]any, path string) {
	v.spacing(s, path, "spacing", true)
	v.str(s, path, "backgroundColor", true)
	v.backgroundImage(s, path)
}

func (v *validator) rows(node map[string]any, path string, required bool) {
	val, ok := v.field(node, path, "rows", required)
	if !ok {
		return
	}
	p := join(path, "rows")
	list, ok := v.array(p, val)
	if !ok {
		return
	}
	for i, r := range list {
		v.row(index(p, i), r)
	}
}

func (v *validator) row(path string, val any) {
	r, ok := v.object(path, val)
	if !ok {
		return
	}
	v.str(r, path, "id", true)
	if s, p, ok := v.settings(r, path); ok {
		v.commonSettings(s, p)
		v.num(s, p, "height", false)
		v.num(s, p, "gap", true)
	}
	val, ok = v.field(r, path, "cells", true)
	if !ok {
		return
	}
	p := join(path, "cells")
	cells, ok := v.array(p, val)
	if !ok {
		return
	}
	for i, c := range cells {
		v.cell(index(p, i), c)
	}
}

var (
	verticalAligns   = []string{string(style.AlignTop), string(style.AlignMiddle), string(style.AlignBottom)}
	horizontalAligns = []string{string(style.AlignLeft), string(style.AlignCenter), string(style.AlignRight)}
)

func (v *validator) cell(path string, val any) {
	c, ok := v.object(path, val)
	if !ok {
		return
	}
	v.str(c, path, "id", true)
	if s, p, ok := v.settings(c, path); ok {
		v.commonSettings(s, p)
		v.str(s, p, "link", false)
		v.enum(s, p, "verticalAlign", true, verticalAligns...)
		v.enum(s, p, "horizontalAlign", false, horizontalAligns...)
		v.num(s, p, "borderRadius", false)
		v.num(s, p, "width", false)
		v.num(s, p, "height", false)
	}
	if val, ok := v.field(c, path, "atoms", true); ok {
		p := join(path, "atoms")
		if atoms, ok := v.array(p, val); ok {
			for i, a := range atoms {
				v.atom(index(p, i), a)
			}
		}
	}
	v.rows(c, path, false)
}

func (v *validator) atom(path string, val any) {
	a, ok := v.object(path, val)
	if !ok {
		return
	}
	typ, ok := v.str(a, path, "type", true)
	if !ok {
		return
	}
	switch model.AtomType(typ) {
	case model.AtomText:
		v.str(a, path, "value", true)
		v.str(a, path, "color", true)
	case model.AtomButton:
		v.str(a, path, "text", true)
		v.str(a, path, "link", true)
		v.str(a, path, "backgroundColor", true)
		v.str(a, path, "color", true)
		v.num(a, path, "fontSize", true)
		v.num(a, path, "borderRadius", true)
		v.insets(a, path, "padding", true)
	case model.AtomDivider:
		v.str(a, path, "color", true)
		v.num(a, path, "height", true)
	case model.AtomImage:
		v.str(a, path, "src", true)
		v.str(a, path, "link", false)
		v.str(a, path, "alt", false)
		v.num(a, path, "width", false)
		v.num(a, path, "height", false)
		v.num(a, path, "borderRadius", false)
	case model.AtomMenu:
		v.enum(a, path, "itemType", false, string(model.MenuItemText), string(model.MenuItemImage))
		v.num(a, path, "gap", false)
		if val, ok := v.field(a, path, "items", true); ok {
			p := join(path, "items")
			if items, ok := v.array(p, val); ok {
				for i, it := range items {
					v.menuItem(index(p, i), it)
				}
			}
		}
	default:
		v.add(join(path, "type"), "unsupported atom type %q", typ)
		return
	}
	v.str(a, path, "id", true)
	v.spacing(a, path, "spacing", false)
}

func (v *validator) menuItem(path string, val any) {
	it, ok := v.object(path, val)
	if !ok {
		return
	}
	typ, ok := v.str(it, path, "type", true)
	if !ok {
		return
	}
	switch model.MenuItemType(typ) {
	case model.MenuItemText:
		v.str(it, path, "text", true)
		v.str(it, path, "link", true)
		v.str(it, path, "color", true)
		v.num(it, path, "fontSize", true)
	case model.MenuItemImage:
		v.str(it, path, "name", true)
		v.str(it, path, "link", true)
		v.str(it, path, "url", true)
		v.num(it, path, "width", true)
		v.num(it, path, "height", true)
		v.str(it, path, "alt", false)
	default:
		v.add(join(path, "type"), "unsupported menu item type %q", typ)
	}
}
