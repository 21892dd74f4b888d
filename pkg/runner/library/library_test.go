package library

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/edit"
	"tableflip.dev/postcard/pkg/store"
)

func init() {
	color.NoColor = true
}

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func TestLibraryOnDisk(t *testing.T) {
	ctx := context.Background()
	p, err := store.Load(testConfig(t.TempDir()))
	require.NoError(t, err)
	s, err := app.Open(ctx, app.WithPersistence(p), app.WithTitle("Weekly"))
	require.NoError(t, err)

	preset, err := catalog.New("footer", catalog.ThemeLight, "")
	require.NoError(t, err)
	s.InstallPreset(preset, edit.End)

	var out bytes.Buffer
	require.NoError(t, (&Save{Session: s, Name: "weekly digest", Out: &out}).Do(ctx))
	require.NoError(t, (&Clear{Session: s, Out: &out}).Do(ctx))
	assert.Empty(t, s.Document().Components)

	out.Reset()
	require.NoError(t, (&List{Session: s, Out: &out}).Do(ctx))
	assert.Contains(t, out.String(), "weekly digest")
	assert.Contains(t, out.String(), "Weekly")

	require.NoError(t, (&Open{Session: s, Name: "weekly digest", Out: &out}).Do(ctx))
	assert.Len(t, s.Document().Components, 1)

	require.NoError(t, (&Delete{Session: s, Name: "weekly digest", Out: &out}).Do(ctx))
	named, err := s.ListNamed(ctx)
	require.NoError(t, err)
	assert.Empty(t, named)
}
