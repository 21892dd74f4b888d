package transfer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/edit"
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

func TestYAMLRoundTrip(t *testing.T) {
	src := session(t)
	p, err := catalog.New("header", catalog.ThemeDark, "Top")
	require.NoError(t, err)
	src.InstallPreset(p, edit.End)

	path := filepath.Join(t.TempDir(), "card.yaml")
	require.NoError(t, (&Export{Session: src, Path: path}).Do(context.Background()))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "version: 2")

	dst := session(t)
	var out bytes.Buffer
	require.NoError(t, (&Import{Session: dst, Path: path, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "Top")
	require.Len(t, dst.Document().Components, 1)
	assert.Equal(t, "Top", dst.Document().Components[0].Block.Label)
}

func TestImportFromStdin(t *testing.T) {
	src := session(t)
	var buf bytes.Buffer
	require.NoError(t, (&Export{Session: src, Stdout: &buf}).Do(context.Background()))

	dst := session(t)
	imp := Import{Session: dst, Path: Stdio, Stdin: strings.NewReader(buf.String()), Out: &bytes.Buffer{}}
	require.NoError(t, imp.Do(context.Background()))
}

func TestImportReportsIssues(t *testing.T) {
	dst := session(t)
	var out bytes.Buffer
	imp := Import{Session: dst, Path: Stdio, Stdin: strings.NewReader(`{"version":2`), Out: &out}
	err := imp.Do(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "Invalid JSON format")
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := (&Export{Session: session(t), Format: "toml"}).Encode()
	assert.Error(t, err)
}
