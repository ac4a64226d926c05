package logtail

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regexfav.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestRead_ReturnsTailInOrder(t *testing.T) {
	path := writeLines(t, "one", "two", "three", "four", "five")

	lines, err := Read(path, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "four", "five"}, lines)
}

func TestRead_ShortFile(t *testing.T) {
	path := writeLines(t, "one", "two")

	lines, err := Read(path, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestRead_ExactMultipleOfLimit(t *testing.T) {
	path := writeLines(t, "a", "b", "c", "d")

	lines, err := Read(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, lines)
}

func TestRead_MissingFileAndEmptyInputs(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "absent.log"), 5)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = Read("", 5)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = Read(writeLines(t, "x"), 0)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestParse_DecodesLoggerFields(t *testing.T) {
	line := `{"level":"warn","cmp":"favorites","id":"12","attempt":2,"error":"boom","time":"2026-10-17T09:30:00Z","message":"rate failed"}`

	e := Parse(line)
	assert.Equal(t, zerolog.WarnLevel, e.Level)
	assert.Equal(t, "favorites", e.Component)
	assert.Equal(t, "rate failed", e.Message)
	assert.Equal(t, "boom", e.Error)
	assert.Equal(t, map[string]string{"id": "12", "attempt": "2"}, e.Fields)
	assert.Equal(t, 9, e.Time.Hour())

	assert.Equal(t, "09:30:00 WARN [favorites] rate failed attempt=2 id=12 error=boom", e.Format())
}

func TestParse_PlainTextPassesThrough(t *testing.T) {
	e := Parse("panic: something odd")
	assert.Equal(t, zerolog.NoLevel, e.Level)
	assert.Equal(t, "panic: something odd", e.Message)
	assert.Equal(t, "panic: something odd", e.Format())
}

func TestParse_MissingLevel(t *testing.T) {
	e := Parse(`{"message":"hello"}`)
	assert.Equal(t, zerolog.NoLevel, e.Level)
	assert.Equal(t, "--- hello", e.Format())
}
