package templateio

import (
	"tableflip.dev/postcard/pkg/style"
)

// Migrate returns a deep copy of a parsed payload with legacy values
// rewritten to their current form. The version tag is left alone and v is
// never modified.
//
// Today that is a single rewrite: background image position "button" becomes
// "bottom", on block, row and cell settings and on the general background.
func Migrate(v any) any {
	out := deepCopy(v)
	root, ok := out.(map[string]any)
	if !ok {
		return out
	}
	if editor, ok := root["editor"].(map[string]any); ok {
		if general, ok := editor["general"].(map[string]any); ok {
			patchPosition(general["background"])
		}
	}
	canvas, _ := root["canvas"].(map[string]any)
	components, _ := canvas["components"].([]any)
	for _, c := range components {
		comp, _ := c.(map[string]any)
		block, ok := comp["block"].(map[string]any)
		if !ok {
			continue
		}
		patchSettings(block)
		migrateRows(block["rows"])
	}
	return out
}

func migrateRows(v any) {
	rows, _ := v.([]any)
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		patchSettings(row)
		cells, _ := row["cells"].([]any)
		for _, c := range cells {
			cell, ok := c.(map[string]any)
			if !ok {
				continue
			}
			patchSettings(cell)
			migrateRows(cell["rows"])
		}
	}
}

func patchSettings(node map[string]any) {
	if settings, ok := node["settings"].(map[string]any); ok {
		patchPosition(settings["backgroundImage"])
	}
}

func patchPosition(v any) {
	img, ok := v.(map[string]any)
	if !ok {
		return
	}
	if img["position"] == style.LegacyPositionButton {
		img["position"] = string(style.PositionBottom)
	}
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
