package prefs

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

// Store is a live view of the prefs file. Reads are served from memory;
// every write re-reads the file under an advisory lock, applies the change
// and writes it back, so a concurrent `regexfav fav` command is not lost.
type Store struct {
	path string
	lock *flock.Flock

	mu    sync.Mutex
	prefs Prefs
}

// Open loads the prefs file at path (or the default path) into a Store.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	return &Store{
		path:  resolved,
		lock:  flock.New(resolved + ".lock"),
		prefs: loadFile(resolved),
	}, nil
}

// Path returns the resolved prefs file path.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current preferences.
func (s *Store) Snapshot() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Prefs{
		Theme:     s.prefs.Theme,
		Favorites: slices.Clone(s.prefs.Favorites),
		Ratings:   cloneRatings(s.prefs.Ratings),
	}
}

// Reload re-reads the file.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("lock prefs: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()
	s.prefs = loadFile(s.path)
	return nil
}

// AllFavorites returns favourite ids in the order they were added.
func (s *Store) AllFavorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.prefs.Favorites)
}

// Favorite reports whether id is a favourite.
func (s *Store) Favorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.prefs.Favorites, strings.TrimSpace(id))
}

// SetFavorite adds or removes id. Adding keeps the existing position.
func (s *Store) SetFavorite(id string, fav bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("favorite id required")
	}
	return s.update(func(p *Prefs) {
		idx := slices.Index(p.Favorites, id)
		switch {
		case fav && idx < 0:
			p.Favorites = append(p.Favorites, id)
		case !fav && idx >= 0:
			p.Favorites = slices.Delete(p.Favorites, idx, idx+1)
		}
	})
}

// Rating returns the personal rating for id, or 0.
func (s *Store) Rating(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Ratings[strings.TrimSpace(id)]
}

// SetRating stores a 0-5 rating for id. Zero clears it.
func (s *Store) SetRating(id string, v int) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("rating id required")
	}
	if v < 0 || v > MaxRating {
		return fmt.Errorf("rating %d out of range", v)
	}
	return s.update(func(p *Prefs) {
		if v == 0 {
			delete(p.Ratings, id)
			return
		}
		p.Ratings[id] = v
	})
}

// SetTheme stores the UI theme name.
func (s *Store) SetTheme(name string) error {
	return s.update(func(p *Prefs) {
		p.Theme = strings.TrimSpace(name)
		p.normalize()
	})
}

func (s *Store) update(apply func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock prefs: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	current, err := readFile(s.path)
	if err != nil {
		return err
	}
	apply(&current)
	if err := saveFile(s.path, current); err != nil {
		return err
	}
	s.prefs = current
	return nil
}

func cloneRatings(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
