package rules

import (
	"encoding/json"
	"fmt"

	"github.com/mbarbey/nfgrid/internal/fuzzy"
)

// setJSON is the serialized form of a Set: the flat vertex arena plus the
// index-based partitions and rules, which round-trip without losing vertex
// sharing.
type setJSON struct {
	Vertices   []float64     `json:"vertices"`
	Partitions [][]fuzzy.MF  `json:"partitions"`
	Rules      []Rule        `json:"rules"`
}

// MarshalJSON serializes the trained set.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(setJSON{
		Vertices:   s.Arena.Positions(),
		Partitions: s.Partitions,
		Rules:      s.Rules,
	})
}

// UnmarshalJSON restores a set serialized by MarshalJSON, rebuilding the
// arena and the cell-key index.
func (s *Set) UnmarshalJSON(b []byte) error {
	var raw setJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode rule set: %w", err)
	}

	arena := fuzzy.NewArena()
	arena.Restore(raw.Vertices)

	*s = Set{Arena: arena, Partitions: raw.Partitions}
	for _, r := range raw.Rules {
		if len(r.Cell) != len(raw.Partitions) {
			return fmt.Errorf("rule %q spans %d features, partitions define %d",
				r.Key(), len(r.Cell), len(raw.Partitions))
		}
		s.add(r)
	}
	return nil
}
