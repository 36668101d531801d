// Package progress reports phase-boundary events from induction and
// training, decoupling observability from the algorithm's control flow.
package progress

import (
	"fmt"
	"io"
)

// Phase identifies a stage boundary in model construction.
type Phase string

const (
	PhasePartitions Phase = "partitions-built"
	PhaseCandidates Phase = "candidates-formed"
	PhasePruned     Phase = "rules-pruned"
	PhaseRepaired   Phase = "repair-complete"
	PhaseEpoch      Phase = "epoch-complete"
)

// Event carries the counters relevant to the phase that emitted it; fields
// outside the phase's scope are zero.
type Event struct {
	Phase      Phase
	Features   int // PhasePartitions
	Candidates int // PhaseCandidates
	Rules      int // PhasePruned, PhaseRepaired
	Epoch      int // PhaseEpoch, 1-based
	Epochs     int // PhaseEpoch
}

// Observer consumes events. A nil Observer is valid and means discard.
type Observer func(Event)

// Emit forwards e to obs if one is set.
func Emit(obs Observer, e Event) {
	if obs != nil {
		obs(e)
	}
}

// Writer returns an Observer that prints one line per event to w.
// Used by the CLI; tests and library callers usually pass nil instead.
func Writer(w io.Writer) Observer {
	return func(e Event) {
		switch e.Phase {
		case PhasePartitions:
			fmt.Fprintf(w, "built membership functions for %d features\n", e.Features)
		case PhaseCandidates:
			fmt.Fprintf(w, "formed %d candidate rules\n", e.Candidates)
		case PhasePruned:
			fmt.Fprintf(w, "kept %d rules after pruning\n", e.Rules)
		case PhaseRepaired:
			fmt.Fprintf(w, "repaired coverage gaps (%d rules)\n", e.Rules)
		case PhaseEpoch:
			fmt.Fprintf(w, "epoch %d/%d complete\n", e.Epoch, e.Epochs)
		}
	}
}
