package edit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/style"
)

func init() {
	color.NoColor = true
}

func session(t *testing.T) *app.Session {
	t.Helper()
	s, err := app.Open(context.Background())
	require.NoError(t, err)
	return s
}

func TestAddTree(t *testing.T) {
	ctx := context.Background()
	s := session(t)
	var out bytes.Buffer

	require.NoError(t, (&Add{Session: s, Kind: KindBlock, Preset: "text", Theme: catalog.ThemeLight, At: -1, Out: &out}).Do(ctx))
	block := s.Document().Components[0].Block
	row := block.Rows[0]
	cell := row.Cells[0]

	require.NoError(t, (&Add{Session: s, Kind: KindRow, ParentID: block.ID, At: -1, Out: &out}).Do(ctx))
	require.NoError(t, (&Add{Session: s, Kind: KindRow, ParentID: cell.ID, At: -1, Out: &out}).Do(ctx))
	require.NoError(t, (&Add{Session: s, Kind: KindCell, ParentID: row.ID, At: 0, Out: &out}).Do(ctx))
	require.NoError(t, (&Add{Session: s, Kind: KindAtom, ParentID: cell.ID, AtomType: model.AtomButton, At: -1, Out: &out}).Do(ctx))

	doc := s.Document()
	b := doc.Components[0].Block
	assert.Len(t, b.Rows, 2)
	assert.Len(t, b.Rows[0].Cells, 2)
	assert.Equal(t, cell.ID, b.Rows[0].Cells[1].ID)
	assert.Len(t, b.Rows[0].Cells[1].Rows, 1)
	assert.Equal(t, model.AtomButton, b.Rows[0].Cells[1].Atoms[2].Type())
	assert.Contains(t, out.String(), "added")

	err := (&Add{Session: s, Kind: KindAtom, ParentID: row.ID, AtomType: model.AtomText}).Do(ctx)
	assert.Error(t, err)
	err = (&Add{Session: s, Kind: KindRow, ParentID: "nope"}).Do(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))
	err = (&Add{Session: s, Kind: KindBlock, Preset: "carousel"}).Do(ctx)
	assert.True(t, errors.Is(err, catalog.ErrUnknownPreset))
}

func TestRemoveDuplicateMove(t *testing.T) {
	ctx := context.Background()
	s := session(t)
	out := &bytes.Buffer{}
	require.NoError(t, (&Add{Session: s, Kind: KindBlock, Preset: "text", At: -1, Out: out}).Do(ctx))
	require.NoError(t, (&Add{Session: s, Kind: KindBlock, Preset: "divider", At: -1, Out: out}).Do(ctx))
	doc := s.Document()
	first, second := doc.Components[0].Block, doc.Components[1].Block

	err := (&Remove{Session: s, ID: first.Rows[0].ID, Out: out}).Do(ctx)
	assert.True(t, errors.Is(err, ErrNoChange), "the last row stays")

	require.NoError(t, (&Duplicate{Session: s, ID: first.ID, Out: out}).Do(ctx))
	assert.Len(t, s.Document().Components, 3)

	require.NoError(t, (&Move{Session: s, ID: second.ID, To: 0, Out: out}).Do(ctx))
	assert.Equal(t, second.ID, s.Document().Components[0].Block.ID)
	require.NoError(t, (&Move{Session: s, ID: second.ID, To: -1, Out: out}).Do(ctx))
	assert.Equal(t, second.ID, s.Document().Components[2].Block.ID)

	require.NoError(t, (&Remove{Session: s, ID: second.ID, Out: out}).Do(ctx))
	assert.Len(t, s.Document().Components, 2)
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	s := session(t)
	out := &bytes.Buffer{}
	require.NoError(t, (&Add{Session: s, Kind: KindBlock, Preset: "text", At: -1, Out: out}).Do(ctx))
	cell := s.Document().Components[0].Block.Rows[0].Cells[0]

	require.NoError(t, (&Set{Session: s, Key: "v2-settings::cell::" + cell.ID + "::verticalAlign", Value: "bottom", Out: out}).Do(ctx))
	require.NoError(t, (&Set{Session: s, Key: "v2-settings::cell::" + cell.ID + "::spacing::padding", Value: "[1,2,3,4]", Out: out}).Do(ctx))
	require.NoError(t, (&Set{Session: s, Key: "v2-general::previewText", Value: "Hello", Out: out}).Do(ctx))

	doc := s.Document()
	got := doc.Components[0].Block.Rows[0].Cells[0].Settings
	assert.Equal(t, style.AlignBottom, got.VerticalAlign)
	require.NotNil(t, got.Spacing.Padding)
	assert.Equal(t, style.Insets{1, 2, 3, 4}, *got.Spacing.Padding)
	assert.Equal(t, "Hello", doc.General.PreviewText)

	err := (&Set{Session: s, Key: "v2-settings::cell::" + cell.ID + "::verticalAlign", Value: "sideways"}).Do(ctx)
	assert.True(t, errors.Is(err, ErrNoChange))
	err = (&Set{Session: s, Key: "nonsense"}).Do(ctx)
	assert.Error(t, err)
}
