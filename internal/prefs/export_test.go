package prefs

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_RoundTripsThroughYAML(t *testing.T) {
	src, err := Open(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	require.NoError(t, src.SetFavorite("12", true))
	require.NoError(t, src.SetFavorite("40", true))
	require.NoError(t, src.SetRating("40", 3))

	var buf bytes.Buffer
	require.NoError(t, src.Export().WriteYAML(&buf))
	assert.Contains(t, buf.String(), "- id: \"12\"")
	assert.Contains(t, buf.String(), "rating: 3")

	e, err := ReadExport(&buf)
	require.NoError(t, err)

	dst, err := Open(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	require.NoError(t, dst.SetFavorite("40", true))

	added, err := dst.Import(e)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"40", "12"}, dst.AllFavorites())
	assert.Equal(t, 3, dst.Rating("40"))
}

func TestImport_RejectsBadRating(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)

	_, err = s.Import(Export{Favorites: []ExportEntry{{ID: "1", Rating: 9}}})
	assert.Error(t, err)
	assert.Empty(t, s.AllFavorites())
}

func TestReadExport_EmptyAndInvalid(t *testing.T) {
	e, err := ReadExport(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, e.Favorites)

	_, err = ReadExport(strings.NewReader("favorites: [oops"))
	assert.Error(t, err)
}
