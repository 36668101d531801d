// Package classify turns a trained rule set into predictions.
package classify

import (
	"fmt"

	"github.com/mbarbey/nfgrid/internal/rules"
)

// Predict returns the class of the maximally activated rule for the
// observation. The comparison is greater-or-equal, so among equally
// activated rules the last enumerated one wins — deliberately the opposite
// tie-break from training's strict comparison, matching the procedure this
// engine reimplements. An empty rule set yields the NoClass sentinel.
func Predict(set *rules.Set, obs []float64) rules.Label {
	class := rules.NoClass
	maxAct := 0.0
	for _, r := range set.Rules {
		if act := set.Activation(r, obs); act >= maxAct {
			class, maxAct = r.Class, act
		}
	}
	return class
}

// PredictAll predicts every row of data, validating widths up front so a
// malformed matrix fails before any prediction is produced.
func PredictAll(set *rules.Set, data [][]float64) ([]rules.Label, error) {
	for i, obs := range data {
		if err := set.CheckObservation(obs); err != nil {
			return nil, fmt.Errorf("observation %d: %w", i, err)
		}
	}
	out := make([]rules.Label, len(data))
	for i, obs := range data {
		out[i] = Predict(set, obs)
	}
	return out, nil
}
