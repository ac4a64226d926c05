package favorites

import "fmt"

// Class is the visual state of the favourite toggle.
type Class int

const (
	ClassEmpty Class = iota
	ClassFull
)

func (c Class) String() string {
	if c == ClassFull {
		return "full"
	}
	return "empty"
}

func classOf(fav bool) Class {
	if fav {
		return ClassFull
	}
	return ClassEmpty
}

// FavoriteSync keeps the favourite toggle consistent with the store across
// hover and click. Flags are read from the store on every call and never
// cached; only the rendered class is remembered.
type FavoriteSync struct {
	store Store
	class Class
}

// NewFavoriteSync returns a FavoriteSync backed by store.
func NewFavoriteSync(store Store) *FavoriteSync {
	return &FavoriteSync{store: store}
}

// Class returns the currently rendered class.
func (f *FavoriteSync) Class() Class {
	return f.class
}

// IsFavorite reports the stored flag. The placeholder is never a favourite.
func (f *FavoriteSync) IsFavorite(id string) bool {
	if !Persistable(id) {
		return false
	}
	return f.store.Favorite(id)
}

// Toggle flips the stored flag and renders the stored state. The placeholder
// leaves both the store and the class untouched.
func (f *FavoriteSync) Toggle(id string) (Class, error) {
	if !Persistable(id) {
		return f.class, nil
	}
	if err := f.store.SetFavorite(id, !f.store.Favorite(id)); err != nil {
		return f.Refresh(id), fmt.Errorf("toggle favorite %s: %w", id, err)
	}
	return f.Refresh(id), nil
}

// PreviewHoverState renders the opposite of the stored flag while hovering
// and the stored flag otherwise.
func (f *FavoriteSync) PreviewHoverState(id string, hovering bool) Class {
	if !Persistable(id) {
		return f.class
	}
	fav := f.store.Favorite(id)
	if hovering {
		fav = !fav
	}
	f.class = classOf(fav)
	return f.class
}

// Refresh renders the stored flag for id. The placeholder renders empty
// without consulting the store.
func (f *FavoriteSync) Refresh(id string) Class {
	if !Persistable(id) {
		f.class = ClassEmpty
		return f.class
	}
	f.class = classOf(f.store.Favorite(id))
	return f.class
}
