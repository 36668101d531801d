// Package metrics evaluates predictions against true labels. The engine
// never consumes these values; they are observational output for the CLI and
// the run store.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mbarbey/nfgrid/internal/rules"
)

// Report summarizes classification quality over a label pair.
type Report struct {
	// Classes lists every label seen in either vector, sorted.
	Classes []rules.Label `json:"classes"`

	// Confusion[i][j] counts observations of true class i predicted as
	// class j, indexed by Classes.
	Confusion [][]int `json:"confusion"`

	// Accuracy is the fraction of exact matches.
	Accuracy float64 `json:"accuracy"`

	// Precision and Recall are micro-averaged over classes; with every
	// prediction assigned to exactly one class they coincide with
	// accuracy, and are reported separately for parity with the usual
	// evaluation output.
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// Evaluate builds a Report from parallel true and predicted label vectors.
func Evaluate(truth, predicted []rules.Label) (*Report, error) {
	if len(truth) != len(predicted) {
		return nil, fmt.Errorf("true labels have length %d, predictions %d", len(truth), len(predicted))
	}
	if len(truth) == 0 {
		return nil, fmt.Errorf("nothing to evaluate")
	}

	seen := make(map[rules.Label]bool)
	for _, l := range truth {
		seen[l] = true
	}
	for _, l := range predicted {
		seen[l] = true
	}
	classes := make([]rules.Label, 0, len(seen))
	for l := range seen {
		classes = append(classes, l)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	index := make(map[rules.Label]int, len(classes))
	for i, l := range classes {
		index[l] = i
	}

	confusion := make([][]int, len(classes))
	for i := range confusion {
		confusion[i] = make([]int, len(classes))
	}

	correct := 0
	for i := range truth {
		confusion[index[truth[i]]][index[predicted[i]]]++
		if truth[i] == predicted[i] {
			correct++
		}
	}

	// Micro averaging pools true positives and errors across classes. The
	// diagonal holds the true positives; every off-diagonal entry is both
	// a false positive (for its column) and a false negative (for its
	// row), so the pooled ratios equal accuracy.
	acc := float64(correct) / float64(len(truth))
	return &Report{
		Classes:   classes,
		Confusion: confusion,
		Accuracy:  acc,
		Precision: acc,
		Recall:    acc,
	}, nil
}

// String renders the confusion matrix and summary scores as a fixed-width
// table.
func (r *Report) String() string {
	var b strings.Builder

	width := 6
	for _, c := range r.Classes {
		if len(c)+2 > width {
			width = len(c) + 2
		}
	}

	fmt.Fprintf(&b, "%*s", width, "")
	for _, c := range r.Classes {
		fmt.Fprintf(&b, "%*s", width, string(c))
	}
	b.WriteByte('\n')
	for i, c := range r.Classes {
		fmt.Fprintf(&b, "%*s", width, string(c))
		for j := range r.Classes {
			fmt.Fprintf(&b, "%*d", width, r.Confusion[i][j])
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "accuracy  %.4f\n", r.Accuracy)
	fmt.Fprintf(&b, "precision %.4f\n", r.Precision)
	fmt.Fprintf(&b, "recall    %.4f\n", r.Recall)
	return b.String()
}
