package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbarbey/nfgrid/internal/config"
	"github.com/mbarbey/nfgrid/internal/rules"
)

// ErrNotFound is returned when a run or model does not exist.
var ErrNotFound = errors.New("not found")

// Run records one training run: its parameters and headline results. The
// trained rule set itself is stored alongside, keyed by the run ID.
type Run struct {
	ID        string
	CreatedAt time.Time
	Dataset   string
	Params    config.Experiment
	RuleCount int
	Accuracy  float64
}

// RunRepo manages training runs and their models.
type RunRepo interface {
	// Save stores a run and its trained rule set, assigning the run an ID
	// if it has none.
	Save(ctx context.Context, run *Run, model *rules.Set) error

	// List returns all runs, most recent first, without model payloads.
	List(ctx context.Context) ([]Run, error)

	// Get returns a single run by ID.
	Get(ctx context.Context, id string) (*Run, error)

	// Latest returns the most recent run, or ErrNotFound.
	Latest(ctx context.Context) (*Run, error)

	// Model loads the trained rule set for a run.
	Model(ctx context.Context, runID string) (*rules.Set, error)
}

type runRepo struct {
	db *sql.DB
}

func (r *runRepo) Save(ctx context.Context, run *Run, model *rules.Set) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	params, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	payload, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, dataset, params, rule_count, accuracy)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.Dataset, string(params), run.RuleCount, run.Accuracy)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO models (run_id, payload) VALUES (?, ?)`,
		run.ID, string(payload))
	if err != nil {
		return fmt.Errorf("insert model: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save run: %w", err)
	}
	return nil
}

const runColumns = `id, created_at, dataset, params, rule_count, accuracy`

func (r *runRepo) List(ctx context.Context) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

func (r *runRepo) Get(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRunRow(row)
}

func (r *runRepo) Latest(ctx context.Context) (*Run, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id LIMIT 1`)
	return scanRunRow(row)
}

func (r *runRepo) Model(ctx context.Context, runID string) (*rules.Set, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM models WHERE run_id = ?`, runID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query model: %w", err)
	}

	var set rules.Set
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		return nil, fmt.Errorf("decode model for run %s: %w", runID, err)
	}
	return &set, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (*Run, error) {
	var run Run
	var params string
	if err := s.Scan(&run.ID, &run.CreatedAt, &run.Dataset, &params, &run.RuleCount, &run.Accuracy); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(params), &run.Params); err != nil {
		return nil, fmt.Errorf("decode run params: %w", err)
	}
	return &run, nil
}

func scanRunRow(row *sql.Row) (*Run, error) {
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return run, nil
}
