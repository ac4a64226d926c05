package prefs

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExportEntry is one favourite in an export file. Name and Pattern are
// informational and ignored on import.
type ExportEntry struct {
	ID      string `yaml:"id"`
	Rating  int    `yaml:"rating,omitempty"`
	Name    string `yaml:"name,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

// Export is the portable form of the favourites list.
type Export struct {
	Favorites []ExportEntry `yaml:"favorites"`
}

// Export returns the favourites in order with their personal ratings.
func (s *Store) Export() Export {
	snap := s.Snapshot()
	out := Export{Favorites: make([]ExportEntry, 0, len(snap.Favorites))}
	for _, id := range snap.Favorites {
		out.Favorites = append(out.Favorites, ExportEntry{ID: id, Rating: snap.Ratings[id]})
	}
	return out
}

// WriteYAML encodes e to w.
func (e Export) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return enc.Close()
}

// ReadExport decodes an export file.
func ReadExport(r io.Reader) (Export, error) {
	var e Export
	if err := yaml.NewDecoder(r).Decode(&e); err != nil {
		if err == io.EOF {
			return Export{}, nil
		}
		return Export{}, fmt.Errorf("decode export: %w", err)
	}
	return e, nil
}

// Import merges e into the store: new ids are appended in file order and
// ratings in the file replace stored ones. It returns how many favourites
// were added.
func (s *Store) Import(e Export) (int, error) {
	for _, entry := range e.Favorites {
		if entry.Rating < 0 || entry.Rating > MaxRating {
			return 0, fmt.Errorf("rating %d for %s out of range", entry.Rating, entry.ID)
		}
	}
	added := 0
	err := s.update(func(p *Prefs) {
		for _, entry := range e.Favorites {
			id := strings.TrimSpace(entry.ID)
			if id == "" {
				continue
			}
			if !slices.Contains(p.Favorites, id) {
				p.Favorites = append(p.Favorites, id)
				added++
			}
			if entry.Rating > 0 {
				p.Ratings[id] = entry.Rating
			}
		}
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
