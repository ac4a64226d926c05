package community

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pattern mirrors a saved pattern record returned by /api/patterns.
type Pattern struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Author       string `json:"author,omitempty"`
	Pattern      string `json:"pattern"`
	Content      string `json:"content,omitempty"`
	Replace      string `json:"replace,omitempty"`
	WeightedVote string `json:"weightedVote"`
	// VoteMissing is set when the payload had no weightedVote field at all.
	VoteMissing bool `json:"-"`
}

// UnmarshalJSON accepts id and weightedVote as either JSON strings or numbers.
func (p *Pattern) UnmarshalJSON(data []byte) error {
	type alias Pattern
	aux := struct {
		*alias
		ID           json.RawMessage `json:"id"`
		WeightedVote json.RawMessage `json:"weightedVote"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := scalarString(aux.ID)
	if err != nil {
		return fmt.Errorf("pattern id: %w", err)
	}
	vote, err := scalarString(aux.WeightedVote)
	if err != nil {
		return fmt.Errorf("pattern weightedVote: %w", err)
	}
	p.ID = id
	p.WeightedVote = vote
	p.VoteMissing = aux.WeightedVote == nil
	return nil
}

// Vote returns the parsed rating aggregate. ok is false when the field was
// missing from the payload or is not a number. A blank or null vote counts
// as zero.
func (p Pattern) Vote() (value float64, ok bool) {
	if p.VoteMissing {
		return 0, false
	}
	raw := strings.TrimSpace(p.WeightedVote)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// PatternListResponse mirrors GET /api/patterns.
type PatternListResponse struct {
	Results []Pattern `json:"results"`
}

// RatingRequest is the body of POST /api/patterns/{id}/rating.
type RatingRequest struct {
	Rating int `json:"rating"`
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
