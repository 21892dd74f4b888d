package model

import (
	"tableflip.dev/postcard/pkg/style"
)

// GeneralBackground paints the area around the template body.
type GeneralBackground struct {
	Color    string         `json:"color"`
	Image    string         `json:"image,omitempty"`
	Repeat   style.Repeat   `json:"repeat"`
	Size     style.Size     `json:"size"`
	Position style.Position `json:"position"`
}

// General holds the template-wide settings.
type General struct {
	Padding     style.Insets      `json:"padding"`
	Background  GeneralBackground `json:"background"`
	Font        string            `json:"font"`
	PreviewText string            `json:"previewText"`
}

// DefaultGeneral returns the settings of a fresh template.
func DefaultGeneral() General {
	return General{
		Padding: style.Symmetric(24, 0),
		Background: GeneralBackground{
			Color:    "#f3f4f6",
			Repeat:   style.RepeatNoRepeat,
			Size:     style.SizeCover,
			Position: style.PositionCenter,
		},
		Font: "Arial, Helvetica, sans-serif",
	}
}

// Document is the live editing state: the ordered canvas and its settings.
type Document struct {
	Components []*CanvasBlockInstance `json:"components"`
	General    General                `json:"general"`
}

// NewDocument returns an empty canvas with default settings.
func NewDocument() *Document {
	return &Document{Components: []*CanvasBlockInstance{}, General: DefaultGeneral()}
}

// Clone deep-copies the document, keeping ids.
func (d *Document) Clone() *Document {
	return &Document{Components: CloneComponents(d.Components), General: d.General}
}

// IDs lists every id in the document.
func (d *Document) IDs() []string {
	var ids []string
	for _, c := range d.Components {
		ids = append(ids, c.IDs()...)
	}
	return ids
}

// Meta describes an exported payload.
type Meta struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
	AppVersion string `json:"appVersion,omitempty"`
}

// Editor holds editor-level state carried by a payload.
type Editor struct {
	General General `json:"general"`
}

// Canvas holds the placed components of a payload.
type Canvas struct {
	Components []*CanvasBlockInstance `json:"components"`
}

// Payload is the export/import and persistence format.
type Payload struct {
	Version int    `json:"version"`
	Meta    Meta   `json:"meta"`
	Editor  Editor `json:"editor"`
	Canvas  Canvas `json:"canvas"`
}

// Clone deep-copies the payload.
func (p *Payload) Clone() *Payload {
	out := *p
	out.Canvas.Components = CloneComponents(p.Canvas.Components)
	return &out
}

// Document returns a live document built from a copy of the payload content.
func (p *Payload) Document() *Document {
	return &Document{Components: CloneComponents(p.Canvas.Components), General: p.Editor.General}
}
