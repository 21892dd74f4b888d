// Package style defines the geometry and styling value types shared by every
// level of a postcard template.
package style

import (
	"fmt"
	"math"
	"strings"
)

// Insets is a [top, right, bottom, left] tuple in pixels.
type Insets [4]float64

// Uniform returns insets with the same value on every side.
func Uniform(v float64) Insets {
	return Insets{v, v, v, v}
}

// Symmetric returns insets with vertical and horizontal values.
func Symmetric(vertical, horizontal float64) Insets {
	return Insets{vertical, horizontal, vertical, horizontal}
}

// Top returns the top inset.
func (i Insets) Top() float64 { return i[0] }

// Right returns the right inset.
func (i Insets) Right() float64 { return i[1] }

// Bottom returns the bottom inset.
func (i Insets) Bottom() float64 { return i[2] }

// Left returns the left inset.
func (i Insets) Left() float64 { return i[3] }

// IsZero reports whether every side is zero.
func (i Insets) IsZero() bool {
	return i == Insets{}
}

// Finite replaces NaN and infinite sides with zero.
func (i Insets) Finite() Insets {
	out := i
	for n, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[n] = 0
		}
	}
	return out
}

// CSS renders the insets as a CSS shorthand, e.g. "8px 16px 8px 16px".
func (i Insets) CSS() string {
	parts := make([]string, len(i))
	for n, v := range i {
		parts[n] = fmt.Sprintf("%gpx", v)
	}
	return strings.Join(parts, " ")
}

func (i Insets) String() string {
	return fmt.Sprintf("[%g %g %g %g]", i[0], i[1], i[2], i[3])
}

// Spacing groups the optional margin and padding of a node. A nil side means
// the node inherits (renders as zero).
type Spacing struct {
	Margin  *Insets `json:"margin,omitempty"`
	Padding *Insets `json:"padding,omitempty"`
}

// NewSpacing returns spacing with both sides set.
func NewSpacing(margin, padding Insets) Spacing {
	return Spacing{Margin: &margin, Padding: &padding}
}

// Clone returns a copy that shares no pointers with s.
func (s Spacing) Clone() Spacing {
	out := Spacing{}
	if s.Margin != nil {
		m := *s.Margin
		out.Margin = &m
	}
	if s.Padding != nil {
		p := *s.Padding
		out.Padding = &p
	}
	return out
}

// ResolvedMargin returns the margin or zero insets.
func (s Spacing) ResolvedMargin() Insets {
	if s.Margin == nil {
		return Insets{}
	}
	return *s.Margin
}

// ResolvedPadding returns the padding or zero insets.
func (s Spacing) ResolvedPadding() Insets {
	if s.Padding == nil {
		return Insets{}
	}
	return *s.Padding
}
