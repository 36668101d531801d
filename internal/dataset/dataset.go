// Package dataset loads and prepares the labeled tabular data the engine
// consumes: a rectangular numeric matrix plus a parallel label vector.
package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/mbarbey/nfgrid/internal/rules"
)

// Dataset pairs observations with their class labels. X and Y stay in
// lockstep through shuffling and splitting.
type Dataset struct {
	X [][]float64
	Y []rules.Label
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.X)
}

// Validate checks the matrix/label contract: matching row counts, at least
// one feature, rectangular rows.
func (d *Dataset) Validate() error {
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("matrix has %d rows, label vector has %d", len(d.X), len(d.Y))
	}
	if len(d.X) == 0 {
		return fmt.Errorf("dataset is empty")
	}
	width := len(d.X[0])
	if width == 0 {
		return fmt.Errorf("observations have no features")
	}
	for i, row := range d.X {
		if len(row) != width {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(row), width)
		}
	}
	return nil
}

// Shuffle permutes observations and labels in lockstep.
func (d *Dataset) Shuffle(rnd *rand.Rand) {
	rnd.Shuffle(d.Len(), func(i, j int) {
		d.X[i], d.X[j] = d.X[j], d.X[i]
		d.Y[i], d.Y[j] = d.Y[j], d.Y[i]
	})
}

// Split shuffles and divides the dataset into train and test subsets, with
// trainFrac of the observations (rounded down, at least one when possible)
// going to the training set.
func (d *Dataset) Split(trainFrac float64, rnd *rand.Rand) (train, test *Dataset, err error) {
	if trainFrac <= 0 || trainFrac > 1 {
		return nil, nil, fmt.Errorf("train fraction must be in (0, 1], got %v", trainFrac)
	}
	d.Shuffle(rnd)

	n := int(float64(d.Len()) * trainFrac)
	if n == 0 {
		n = 1
	}
	train = &Dataset{X: d.X[:n], Y: d.Y[:n]}
	test = &Dataset{X: d.X[n:], Y: d.Y[n:]}
	return train, test, nil
}
