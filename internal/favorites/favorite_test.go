package favorites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteSync_SentinelIsNoop(t *testing.T) {
	store := newSpyStore()
	f := NewFavoriteSync(store)

	assert.False(t, f.IsFavorite(PlaceholderID))
	class, err := f.Toggle(PlaceholderID)
	require.NoError(t, err)
	assert.Equal(t, ClassEmpty, class)
	assert.Equal(t, ClassEmpty, f.PreviewHoverState(PlaceholderID, true))
	assert.Equal(t, ClassEmpty, f.PreviewHoverState(PlaceholderID, false))

	assert.Zero(t, store.reads)
	assert.Zero(t, store.writes)
	assert.Empty(t, store.flags)
}

func TestFavoriteSync_SentinelKeepsRenderedClass(t *testing.T) {
	store := newSpyStore("7")
	f := NewFavoriteSync(store)
	require.Equal(t, ClassFull, f.Refresh("7"))

	class, err := f.Toggle(PlaceholderID)
	require.NoError(t, err)
	assert.Equal(t, ClassFull, class)
	assert.Equal(t, ClassFull, f.PreviewHoverState(PlaceholderID, true))
}

func TestFavoriteSync_HoverRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		stored bool
		want   Class
		hover  Class
	}{
		{"favourite", true, ClassFull, ClassEmpty},
		{"not favourite", false, ClassEmpty, ClassFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newSpyStore()
			store.flags["3"] = tt.stored
			f := NewFavoriteSync(store)
			require.Equal(t, tt.want, f.Refresh("3"))

			assert.Equal(t, tt.hover, f.PreviewHoverState("3", true))
			assert.Equal(t, tt.want, f.PreviewHoverState("3", false))
			assert.Equal(t, tt.want, f.Class())
			assert.Zero(t, store.writes)
		})
	}
}

func TestFavoriteSync_ToggleRendersStoredState(t *testing.T) {
	store := newSpyStore()
	f := NewFavoriteSync(store)

	f.PreviewHoverState("3", true)
	class, err := f.Toggle("3")
	require.NoError(t, err)
	assert.Equal(t, ClassFull, class)
	assert.True(t, f.IsFavorite("3"))

	// Leaving after a click shows the new stored state, not the hover preview.
	assert.Equal(t, ClassFull, f.PreviewHoverState("3", false))
}

func TestFavoriteSync_ToggleReportsStoreError(t *testing.T) {
	store := newSpyStore()
	store.failWrites = errors.New("disk full")
	f := NewFavoriteSync(store)

	class, err := f.Toggle("3")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.failWrites)
	assert.Equal(t, ClassEmpty, class)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "full", ClassFull.String())
	assert.Equal(t, "empty", ClassEmpty.String())
}
