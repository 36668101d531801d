// Package trainer runs the winner-take-all refinement loop over an induced
// rule set, nudging membership-function vertices per observation.
package trainer

import (
	"context"
	"fmt"

	"github.com/mbarbey/nfgrid/internal/progress"
	"github.com/mbarbey/nfgrid/internal/rules"
)

// Trainer holds the competitive-learning parameters.
type Trainer struct {
	// Epochs is the number of full passes over the training data. Zero is
	// valid and leaves the rule set untouched.
	Epochs int

	// LearningRate scales each vertex shift; typically a small positive
	// value such as 0.001.
	LearningRate float64

	Observer progress.Observer
}

// Validate checks the parameter ranges.
func (t Trainer) Validate() error {
	if t.Epochs < 0 {
		return fmt.Errorf("epochs must be >= 0, got %d", t.Epochs)
	}
	return nil
}

// Train performs Epochs full passes over the observations. For each
// observation the maximally activated rule wins (strict comparison, first
// maximal rule kept) and only that rule's membership functions move: toward
// the observation when the rule's class matches its label, away otherwise.
// Observations activating no rule are skipped. There is no convergence
// check; the loop always runs Epochs times over every observation, with a
// cancellation check between observations.
func (t Trainer) Train(ctx context.Context, set *rules.Set, data [][]float64, labels []rules.Label) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if len(data) != len(labels) {
		return fmt.Errorf("observation count %d does not match label count %d", len(data), len(labels))
	}

	for epoch := 1; epoch <= t.Epochs; epoch++ {
		for i, obs := range data {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := set.CheckObservation(obs); err != nil {
				return fmt.Errorf("observation %d: %w", i, err)
			}
			t.step(set, obs, labels[i])
		}
		progress.Emit(t.Observer, progress.Event{
			Phase:  progress.PhaseEpoch,
			Epoch:  epoch,
			Epochs: t.Epochs,
		})
	}
	return nil
}

// step applies one winner-take-all update.
func (t Trainer) step(set *rules.Set, obs []float64, label rules.Label) {
	var winner *rules.Rule
	maxAct := 0.0
	for i := range set.Rules {
		if act := set.Activation(set.Rules[i], obs); act > maxAct {
			winner, maxAct = &set.Rules[i], act
		}
	}
	if winner == nil {
		return
	}

	toward := winner.Class == label
	for feat := range winner.Cell {
		set.MF(*winner, feat).Move(set.Arena, obs[feat], t.LearningRate, toward)
	}
}
