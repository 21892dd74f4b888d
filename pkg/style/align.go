package style

import (
	"fmt"
	"strings"
)

// VerticalAlign positions cell content vertically.
type VerticalAlign string

const (
	AlignTop    VerticalAlign = "top"
	AlignMiddle VerticalAlign = "middle"
	AlignBottom VerticalAlign = "bottom"
)

// HorizontalAlign positions cell content horizontally.
type HorizontalAlign string

const (
	AlignLeft   HorizontalAlign = "left"
	AlignCenter HorizontalAlign = "center"
	AlignRight  HorizontalAlign = "right"
)

// ParseVerticalAlign converts raw to a VerticalAlign.
func ParseVerticalAlign(raw string) (VerticalAlign, error) {
	switch v := VerticalAlign(strings.TrimSpace(raw)); v {
	case AlignTop, AlignMiddle, AlignBottom:
		return v, nil
	}
	return AlignTop, fmt.Errorf("style: unknown vertical align %q", raw)
}

// ParseHorizontalAlign converts raw to a HorizontalAlign.
func ParseHorizontalAlign(raw string) (HorizontalAlign, error) {
	switch h := HorizontalAlign(strings.TrimSpace(raw)); h {
	case AlignLeft, AlignCenter, AlignRight:
		return h, nil
	}
	return AlignLeft, fmt.Errorf("style: unknown horizontal align %q", raw)
}

// Valid reports whether v is a supported value.
func (v VerticalAlign) Valid() bool {
	_, err := ParseVerticalAlign(string(v))
	return err == nil
}

// Valid reports whether h is a supported value.
func (h HorizontalAlign) Valid() bool {
	_, err := ParseHorizontalAlign(string(h))
	return err == nil
}
