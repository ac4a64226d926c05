// Package prefs handles regexfav user preferences persistence.
// Preferences are stored in ~/.config/regexfav/prefs.toml and hold the
// favourite pattern ids, personal ratings and the UI theme.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for regexfav.
type Prefs struct {
	Theme     string         `toml:"theme"`
	Favorites []string       `toml:"favorites"`
	Ratings   map[string]int `toml:"ratings"`
}

const (
	defaultPrefsPath = "~/.config/regexfav/prefs.toml"
	defaultTheme     = "Nightfox"
)

// MaxRating is the highest personal rating.
const MaxRating = 5

func defaults() Prefs {
	return Prefs{Theme: defaultTheme, Ratings: map[string]int{}}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults(), nil
	}
	return loadFile(resolved), nil
}

func loadFile(resolved string) Prefs {
	prefs, err := readFile(resolved)
	if err != nil {
		return defaults() // Graceful degradation
	}
	return prefs
}

// readFile is the strict loader used before writes: a missing file yields
// defaults, anything unreadable or undecodable is an error.
func readFile(resolved string) (Prefs, error) {
	prefs := defaults()

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return Prefs{}, fmt.Errorf("read prefs: %w", err)
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{}, fmt.Errorf("decode prefs %s: %w", resolved, err)
	}

	prefs.normalize()
	return prefs, nil
}

// normalize trims ids, drops blanks and duplicates, and clamps ratings.
func (p *Prefs) normalize() {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}

	seen := make(map[string]struct{}, len(p.Favorites))
	favs := p.Favorites[:0]
	for _, id := range p.Favorites {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		favs = append(favs, id)
	}
	p.Favorites = favs

	ratings := make(map[string]int, len(p.Ratings))
	for id, v := range p.Ratings {
		id = strings.TrimSpace(id)
		if id == "" || v <= 0 {
			continue
		}
		ratings[id] = min(v, MaxRating)
	}
	p.Ratings = ratings
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	return saveFile(resolved, p)
}

func saveFile(resolved string, p Prefs) error {
	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
