// Package rules induces a grid of fuzzy classification rules from labeled
// observations and holds the resulting rule set, the trained model's sole
// learned state.
package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mbarbey/nfgrid/internal/fuzzy"
)

// Label is a class label. Labels are opaque strings; the engine never
// interprets them beyond equality.
type Label string

// NoClass is returned by prediction when the rule set is empty. It is a
// well-defined sentinel, not an error: an empty model is a valid (if
// useless) outcome of aggressive pruning.
const NoClass Label = "no class"

// Rule maps one grid cell to its dominant class. Cell holds, per feature,
// the index of the membership function in that feature's partition; the cell
// coordinate is the rule's stable identity for the life of the model even as
// vertex positions move under it.
type Rule struct {
	Cell  []int `json:"cell"`
	Class Label `json:"class"`
}

// Key renders the cell coordinate as a stable map key.
func (r Rule) Key() string {
	parts := make([]string, len(r.Cell))
	for i, c := range r.Cell {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// Set is a trained rule set: the vertex arena, the per-feature membership
// function partitions, and the surviving rules in grid-scan order. Rules
// referencing the same partition function share it, so a boundary merge or a
// training update on one rule is observed by every rule in the same grid
// column.
type Set struct {
	Arena      *fuzzy.Arena
	Partitions [][]fuzzy.MF
	Rules      []Rule

	byKey map[string]int
}

// Features returns the number of features the set was induced over.
func (s *Set) Features() int {
	return len(s.Partitions)
}

// Len returns the number of surviving rules.
func (s *Set) Len() int {
	return len(s.Rules)
}

// MF returns a pointer to the shared membership function that rule r uses
// for feature feat. Mutations through the pointer are visible to every rule
// whose cell selects the same function.
func (s *Set) MF(r Rule, feat int) *fuzzy.MF {
	return &s.Partitions[feat][r.Cell[feat]]
}

// Lookup returns the rule at the given cell key, if present.
func (s *Set) Lookup(key string) (Rule, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return Rule{}, false
	}
	return s.Rules[i], true
}

// Activation scores rule r against an observation: the unweighted mean of
// per-feature membership degrees (not a min or product conjunction).
func (s *Set) Activation(r Rule, obs []float64) float64 {
	n := float64(len(r.Cell))
	act := 0.0
	for feat := range r.Cell {
		act += s.MF(r, feat).Fuzzify(s.Arena, obs[feat]) / n
	}
	return act
}

// add appends a rule, keeping the key index in sync.
func (s *Set) add(r Rule) {
	if s.byKey == nil {
		s.byKey = make(map[string]int)
	}
	s.byKey[r.Key()] = len(s.Rules)
	s.Rules = append(s.Rules, r)
}

// CheckObservation validates that an observation has the set's feature count.
func (s *Set) CheckObservation(obs []float64) error {
	if len(obs) != s.Features() {
		return fmt.Errorf("observation has %d features, model expects %d", len(obs), s.Features())
	}
	return nil
}
