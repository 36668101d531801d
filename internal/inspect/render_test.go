package inspect

import (
	"strings"
	"testing"

	"github.com/mbarbey/nfgrid/internal/fuzzy"
	"github.com/mbarbey/nfgrid/internal/rules"
)

func TestRender_ListsFunctionsAndRules(t *testing.T) {
	data := [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}}
	labels := []rules.Label{"0", "0", "0", "1", "1", "1", "1"}
	set, err := rules.Inducer{Config: rules.Config{MinObservations: 2}}.Induce(data, labels)
	if err != nil {
		t.Fatal(err)
	}

	out := Render(set, "test model")

	for _, want := range []string{"test model", "feature 0", "rules", "=>", "1 features, 5 rules"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q", want)
		}
	}
}

func TestRender_EmptySet(t *testing.T) {
	set := &rules.Set{Arena: fuzzy.NewArena()}

	out := Render(set, "empty")
	if !strings.Contains(out, "none survived pruning") {
		t.Errorf("empty set rendering missing the placeholder:\n%s", out)
	}
}
