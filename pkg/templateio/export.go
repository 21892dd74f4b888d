package templateio

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"

	"tableflip.dev/postcard/pkg/model"
)

// DefaultTitle names exports that were not given a title.
const DefaultTitle = "Untitled template"

// ExportOptions describe the meta block of an export.
type ExportOptions struct {
	Title string
	// CreatedAt defaults to the export time.
	CreatedAt  time.Time
	AppVersion string
	// Now overrides the clock.
	Now func() time.Time
}

// Export snapshots doc into a payload. The meta id and timestamps are new on
// every call; the canvas and editor content are a deep copy of doc.
func Export(doc *model.Document, opts ExportOptions) *model.Payload {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	ts := now().UTC()
	created := opts.CreatedAt
	if created.IsZero() {
		created = ts
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	return &model.Payload{
		Version: model.Version,
		Meta: model.Meta{
			ID:         ulid.MustNew(ulid.Timestamp(ts), ulid.DefaultEntropy()).String(),
			Title:      title,
			CreatedAt:  created.UTC().Format(time.RFC3339),
			UpdatedAt:  ts.Format(time.RFC3339),
			AppVersion: opts.AppVersion,
		},
		Editor: model.Editor{General: doc.General},
		Canvas: model.Canvas{Components: model.CloneComponents(doc.Components)},
	}
}

// Marshal encodes a payload as indented JSON.
func Marshal(p *model.Payload) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
