package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarbey/nfgrid/internal/config"
	"github.com/mbarbey/nfgrid/internal/rules"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func trainedSet(t *testing.T) *rules.Set {
	t.Helper()
	data := [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}}
	labels := []rules.Label{"0", "0", "0", "1", "1", "1", "1"}
	set, err := rules.Inducer{Config: rules.Config{MinObservations: 2}}.Induce(data, labels)
	require.NoError(t, err)
	set.Repair()
	return set
}

func TestRunRepo_SaveAndLoadModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.Runs()
	ctx := context.Background()
	set := trainedSet(t)

	run := &Run{
		Dataset:   "iris.csv",
		Params:    config.Default(),
		RuleCount: set.Len(),
		Accuracy:  0.96,
	}
	require.NoError(t, repo.Save(ctx, run, set))
	assert.NotEmpty(t, run.ID, "Save assigns an ID")

	back, err := repo.Model(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, set.Rules, back.Rules)
	assert.Equal(t, set.Arena.Positions(), back.Arena.Positions())
}

func TestRunRepo_ListAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.Runs()
	ctx := context.Background()
	set := trainedSet(t)

	older := &Run{Dataset: "a.csv", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Params: config.Default()}
	newer := &Run{Dataset: "b.csv", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Params: config.Default()}
	require.NoError(t, repo.Save(ctx, older, set))
	require.NoError(t, repo.Save(ctx, newer, set))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b.csv", runs[0].Dataset)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)

	got, err := repo.Get(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.csv", got.Dataset)
	assert.Equal(t, config.Default(), got.Params)
}

func TestRunRepo_NotFound(t *testing.T) {
	s := openTestStore(t)
	repo := s.Runs()
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.Model(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
