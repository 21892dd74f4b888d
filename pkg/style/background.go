package style

import (
	"fmt"
	"strings"
)

// Repeat is the CSS background-repeat value of a background image.
type Repeat string

const (
	RepeatRepeat   Repeat = "repeat"
	RepeatNoRepeat Repeat = "no-repeat"
)

// Size is the CSS background-size value of a background image.
type Size string

const (
	SizeUnset   Size = "unset"
	SizeCover   Size = "cover"
	SizeContain Size = "contain"
)

// Position is the CSS background-position value of a background image.
type Position string

const (
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
)

// LegacyPositionButton is an old misspelling of PositionBottom still found in
// saved templates. Only the migrator understands it.
const LegacyPositionButton = "button"

// AllRepeats returns the supported repeat values.
func AllRepeats() []Repeat {
	return []Repeat{RepeatRepeat, RepeatNoRepeat}
}

// AllSizes returns the supported size values.
func AllSizes() []Size {
	return []Size{SizeUnset, SizeCover, SizeContain}
}

// AllPositions returns the supported position values.
func AllPositions() []Position {
	return []Position{PositionTop, PositionCenter, PositionBottom, PositionLeft, PositionRight}
}

// ParseRepeat converts raw to a Repeat or returns an error for unknown values.
func ParseRepeat(raw string) (Repeat, error) {
	r := Repeat(strings.TrimSpace(raw))
	for _, candidate := range AllRepeats() {
		if candidate == r {
			return candidate, nil
		}
	}
	return RepeatNoRepeat, fmt.Errorf("style: unknown repeat %q", raw)
}

// ParseSize converts raw to a Size or returns an error for unknown values.
func ParseSize(raw string) (Size, error) {
	s := Size(strings.TrimSpace(raw))
	for _, candidate := range AllSizes() {
		if candidate == s {
			return candidate, nil
		}
	}
	return SizeCover, fmt.Errorf("style: unknown size %q", raw)
}

// ParsePosition converts raw to a Position or returns an error for unknown values.
func ParsePosition(raw string) (Position, error) {
	p := Position(strings.TrimSpace(raw))
	for _, candidate := range AllPositions() {
		if candidate == p {
			return candidate, nil
		}
	}
	return PositionCenter, fmt.Errorf("style: unknown position %q", raw)
}

// Valid reports whether r is a supported value.
func (r Repeat) Valid() bool {
	_, err := ParseRepeat(string(r))
	return err == nil
}

// Valid reports whether s is a supported value.
func (s Size) Valid() bool {
	_, err := ParseSize(string(s))
	return err == nil
}

// Valid reports whether p is a supported value.
func (p Position) Valid() bool {
	_, err := ParsePosition(string(p))
	return err == nil
}

// BackgroundImage describes an image painted behind a block, row or cell.
type BackgroundImage struct {
	URL      string   `json:"url"`
	Repeat   Repeat   `json:"repeat"`
	Size     Size     `json:"size"`
	Position Position `json:"position"`
}

// DefaultBackgroundImage returns a descriptor for url with the editor defaults.
func DefaultBackgroundImage(url string) BackgroundImage {
	return BackgroundImage{
		URL:      url,
		Repeat:   RepeatNoRepeat,
		Size:     SizeCover,
		Position: PositionCenter,
	}
}

// Clone returns a copy of the pointed-to descriptor, or nil.
func (b *BackgroundImage) Clone() *BackgroundImage {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}

// Normalized replaces unknown enum values with the defaults.
func (b BackgroundImage) Normalized() BackgroundImage {
	if !b.Repeat.Valid() {
		b.Repeat = RepeatNoRepeat
	}
	if !b.Size.Valid() {
		b.Size = SizeCover
	}
	if !b.Position.Valid() {
		b.Position = PositionCenter
	}
	return b
}
