package edit

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cast"

	"tableflip.dev/postcard/pkg/style"
)

func toNumber(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case nil:
		return 0, false
	case json.Number:
		f, err = n.Float64()
	case string:
		f, err = cast.ToFloat64E(strings.TrimSuffix(strings.TrimSpace(n), "px"))
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// size coerces a required non-negative number, falling back to def.
func size(v any, def float64) float64 {
	f, ok := toNumber(v)
	if !ok || f < 0 {
		return def
	}
	return f
}

// optionalSize coerces an optional non-negative number. Empty input clears it.
func optionalSize(v any) *float64 {
	f, ok := toNumber(v)
	if !ok || f < 0 {
		return nil
	}
	return &f
}

func toString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	return s, err == nil
}

// toColor keeps any non-empty color string, normalizing hex notation.
func toColor(v any) (string, bool) {
	s, ok := toString(v)
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return "", false
		}
		return c.Hex(), true
	}
	return s, true
}

// toInsets accepts four numbers in any list form or a whitespace or comma
// separated string. One number sets every side, two set vertical and
// horizontal sides.
func toInsets(v any) (style.Insets, bool) {
	var parts []any
	switch t := v.(type) {
	case style.Insets:
		return t.Finite(), true
	case *style.Insets:
		if t == nil {
			return style.Insets{}, false
		}
		return t.Finite(), true
	case []float64:
		for _, f := range t {
			parts = append(parts, f)
		}
	case []int:
		for _, n := range t {
			parts = append(parts, n)
		}
	case []any:
		parts = t
	case string:
		for _, f := range strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			parts = append(parts, f)
		}
	default:
		if f, ok := toNumber(v); ok {
			return style.Uniform(f), true
		}
		return style.Insets{}, false
	}

	switch len(parts) {
	case 1:
		f, ok := toNumber(parts[0])
		if !ok {
			return style.Insets{}, false
		}
		return style.Uniform(f), true
	case 2:
		v, okV := toNumber(parts[0])
		h, okH := toNumber(parts[1])
		if !okV || !okH {
			return style.Insets{}, false
		}
		return style.Symmetric(v, h), true
	case 4:
		var out style.Insets
		for i, p := range parts {
			f, ok := toNumber(p)
			if !ok {
				return style.Insets{}, false
			}
			out[i] = f
		}
		return out, true
	}
	return style.Insets{}, false
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
