package trainer

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/mbarbey/nfgrid/internal/fuzzy"
	"github.com/mbarbey/nfgrid/internal/progress"
	"github.com/mbarbey/nfgrid/internal/rules"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// singleRuleSet builds a one-feature set with one rule over the triangle
// (0, 1, 2) labeled class.
func singleRuleSet(class rules.Label) *rules.Set {
	a := fuzzy.NewArena()
	mf := fuzzy.MF{Low: a.Alloc(0), Mid: a.Alloc(1), High: a.Alloc(2)}
	return &rules.Set{
		Arena:      a,
		Partitions: [][]fuzzy.MF{{mf}},
		Rules:      []rules.Rule{{Cell: []int{0}, Class: class}},
	}
}

// overlappingPair builds a one-feature set with two independent (unshared)
// triangles (0,1,2) and (1,2,3) so that both rules activate 0.5 at x=1.5.
func overlappingPair() *rules.Set {
	a := fuzzy.NewArena()
	first := fuzzy.MF{Low: a.Alloc(0), Mid: a.Alloc(1), High: a.Alloc(2)}
	second := fuzzy.MF{Low: a.Alloc(1), Mid: a.Alloc(2), High: a.Alloc(3)}
	return &rules.Set{
		Arena:      a,
		Partitions: [][]fuzzy.MF{{first, second}},
		Rules: []rules.Rule{
			{Cell: []int{0}, Class: "a"},
			{Cell: []int{1}, Class: "b"},
		},
	}
}

func TestTrain_ZeroEpochsLeavesSetUntouched(t *testing.T) {
	set := singleRuleSet("a")
	before := set.Arena.Positions()

	tr := Trainer{Epochs: 0, LearningRate: 0.5}
	if err := tr.Train(context.Background(), set, [][]float64{{1}}, []rules.Label{"a"}); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(before, set.Arena.Positions()) {
		t.Errorf("vertices moved with zero epochs: %v -> %v", before, set.Arena.Positions())
	}
}

func TestTrain_MatchingLabelMovesToward(t *testing.T) {
	set := singleRuleSet("a")

	tr := Trainer{Epochs: 1, LearningRate: 0.1}
	if err := tr.Train(context.Background(), set, [][]float64{{1.5}}, []rules.Label{"a"}); err != nil {
		t.Fatal(err)
	}

	mf := set.MF(set.Rules[0], 0)
	// Each vertex moved a tenth of its distance to 1.5.
	if !almostEqual(mf.Lo(set.Arena), 0.15) || !almostEqual(mf.Center(set.Arena), 1.05) || !almostEqual(mf.Hi(set.Arena), 1.95) {
		t.Errorf("positions after agreeing update = %v %v %v",
			mf.Lo(set.Arena), mf.Center(set.Arena), mf.Hi(set.Arena))
	}
}

func TestTrain_MismatchedLabelMovesAway(t *testing.T) {
	set := singleRuleSet("a")

	tr := Trainer{Epochs: 1, LearningRate: 0.1}
	if err := tr.Train(context.Background(), set, [][]float64{{1.5}}, []rules.Label{"b"}); err != nil {
		t.Fatal(err)
	}

	mf := set.MF(set.Rules[0], 0)
	if !almostEqual(mf.Lo(set.Arena), -0.15) || !almostEqual(mf.Center(set.Arena), 0.95) || !almostEqual(mf.Hi(set.Arena), 2.05) {
		t.Errorf("positions after disagreeing update = %v %v %v",
			mf.Lo(set.Arena), mf.Center(set.Arena), mf.Hi(set.Arena))
	}
}

func TestTrain_ObservationOutsideAllRulesIsSkipped(t *testing.T) {
	set := singleRuleSet("a")
	before := set.Arena.Positions()

	tr := Trainer{Epochs: 3, LearningRate: 0.5}
	if err := tr.Train(context.Background(), set, [][]float64{{50}}, []rules.Label{"a"}); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(before, set.Arena.Positions()) {
		t.Errorf("vertices moved for an unmatched observation: %v -> %v", before, set.Arena.Positions())
	}
}

func TestTrain_TieKeepsFirstSeenRule(t *testing.T) {
	set := overlappingPair()
	secondBefore := []float64{
		set.Partitions[0][1].Lo(set.Arena),
		set.Partitions[0][1].Center(set.Arena),
		set.Partitions[0][1].Hi(set.Arena),
	}

	tr := Trainer{Epochs: 1, LearningRate: 0.1}
	if err := tr.Train(context.Background(), set, [][]float64{{1.5}}, []rules.Label{"a"}); err != nil {
		t.Fatal(err)
	}

	// Both rules activate exactly 0.5; the strict comparison keeps the
	// first, so only its function moves.
	first := set.Partitions[0][0]
	if almostEqual(first.Center(set.Arena), 1) {
		t.Error("first rule's function did not move on a tie it should win")
	}
	second := set.Partitions[0][1]
	secondAfter := []float64{second.Lo(set.Arena), second.Center(set.Arena), second.Hi(set.Arena)}
	if !reflect.DeepEqual(secondBefore, secondAfter) {
		t.Errorf("second rule's function moved on a lost tie: %v -> %v", secondBefore, secondAfter)
	}
}

func TestTrain_EmitsEpochEvents(t *testing.T) {
	set := singleRuleSet("a")
	var events []progress.Event
	tr := Trainer{
		Epochs:       3,
		LearningRate: 0.01,
		Observer:     func(e progress.Event) { events = append(events, e) },
	}

	if err := tr.Train(context.Background(), set, [][]float64{{1}}, []rules.Label{"a"}); err != nil {
		t.Fatal(err)
	}

	if len(events) != 3 {
		t.Fatalf("got %d epoch events, want 3", len(events))
	}
	for i, e := range events {
		if e.Phase != progress.PhaseEpoch || e.Epoch != i+1 || e.Epochs != 3 {
			t.Errorf("event %d = %+v", i, e)
		}
	}
}

func TestTrain_Cancellation(t *testing.T) {
	set := singleRuleSet("a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := Trainer{Epochs: 10, LearningRate: 0.1}
	err := tr.Train(ctx, set, [][]float64{{1}}, []rules.Label{"a"})
	if err != context.Canceled {
		t.Fatalf("Train returned %v, want context.Canceled", err)
	}
}

func TestTrain_RejectsNegativeEpochs(t *testing.T) {
	set := singleRuleSet("a")
	tr := Trainer{Epochs: -1}
	if err := tr.Train(context.Background(), set, nil, nil); err == nil {
		t.Fatal("expected an error for negative epochs")
	}
}
