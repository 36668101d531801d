package rules

import (
	"fmt"

	"github.com/mbarbey/nfgrid/internal/fuzzy"
	"github.com/mbarbey/nfgrid/internal/progress"
)

// Config holds the induction parameters.
type Config struct {
	// MaxRules is accepted for compatibility with the procedure's published
	// parameters but is not enforced: induction never caps the rule count.
	MaxRules int

	// MinObservations is the support threshold: a grid cell whose dominant
	// class has fewer matching observations is discarded.
	MinObservations int
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.MinObservations < 1 {
		return fmt.Errorf("min observations must be >= 1, got %d", c.MinObservations)
	}
	return nil
}

// Inducer builds the initial rule set from labeled observations.
type Inducer struct {
	Config   Config
	Observer progress.Observer
}

// Induce partitions each feature's observed range, forms the full Cartesian
// grid of candidate rules, assigns each candidate the class with the
// strictly greatest observation count inside its cell, and discards empty or
// under-supported candidates. Ties between class counts keep whichever class
// the count scan reaches first.
func (in Inducer) Induce(data [][]float64, labels []Label) (*Set, error) {
	if err := in.Config.Validate(); err != nil {
		return nil, err
	}
	if err := checkShape(data, labels); err != nil {
		return nil, err
	}

	nFeat := len(data[0])
	set := &Set{
		Arena:      fuzzy.NewArena(),
		Partitions: make([][]fuzzy.MF, nFeat),
	}

	column := make([]float64, len(data))
	for feat := 0; feat < nFeat; feat++ {
		for i, row := range data {
			column[i] = row[feat]
		}
		set.Partitions[feat] = fuzzy.Partition(set.Arena, column)
	}
	progress.Emit(in.Observer, progress.Event{Phase: progress.PhasePartitions, Features: nFeat})

	candidates := 1
	for _, p := range set.Partitions {
		candidates *= len(p)
	}
	progress.Emit(in.Observer, progress.Event{Phase: progress.PhaseCandidates, Candidates: candidates})

	// Walk the grid in odometer order so rule enumeration is deterministic.
	cell := make([]int, nFeat)
	for {
		if r, ok := in.candidate(set, cell, data, labels); ok {
			set.add(r)
		}
		if !advance(cell, set.Partitions) {
			break
		}
	}
	progress.Emit(in.Observer, progress.Event{Phase: progress.PhasePruned, Rules: set.Len()})

	return set, nil
}

// candidate tallies per-class observation counts inside the cell and returns
// the rule for its dominant class, or ok=false when the cell is empty or the
// dominant count is below the support threshold.
func (in Inducer) candidate(set *Set, cell []int, data [][]float64, labels []Label) (Rule, bool) {
	counts := make(map[Label]int)
	for i, row := range data {
		if cellContains(set, cell, row) {
			counts[labels[i]]++
		}
	}
	if len(counts) == 0 {
		return Rule{}, false
	}

	var best Label
	bestCount := 0
	for class, n := range counts {
		if n > bestCount {
			best, bestCount = class, n
		}
	}
	if bestCount < in.Config.MinObservations {
		return Rule{}, false
	}

	coord := make([]int, len(cell))
	copy(coord, cell)
	return Rule{Cell: coord, Class: best}, true
}

// cellContains reports whether the observation falls inside the cell: every
// feature value must lie in the closed support of that feature's function.
func cellContains(set *Set, cell []int, row []float64) bool {
	for feat, idx := range cell {
		if !set.Partitions[feat][idx].Covers(set.Arena, row[feat]) {
			return false
		}
	}
	return true
}

// advance increments the grid coordinate, rightmost digit fastest, and
// reports false once the coordinate wraps past the last cell.
func advance(cell []int, partitions [][]fuzzy.MF) bool {
	for i := len(cell) - 1; i >= 0; i-- {
		cell[i]++
		if cell[i] < len(partitions[i]) {
			return true
		}
		cell[i] = 0
	}
	return false
}

// checkShape rejects malformed input before any induction work happens.
func checkShape(data [][]float64, labels []Label) error {
	if len(data) == 0 {
		return fmt.Errorf("no observations")
	}
	if len(data) != len(labels) {
		return fmt.Errorf("observation count %d does not match label count %d", len(data), len(labels))
	}
	width := len(data[0])
	if width == 0 {
		return fmt.Errorf("observations have no features")
	}
	for i, row := range data {
		if len(row) != width {
			return fmt.Errorf("observation %d has %d features, expected %d", i, len(row), width)
		}
	}
	return nil
}
