// Package config loads experiment configuration files for the CLI. A config
// file is JSON, validated against an embedded schema before it is decoded,
// so a typo'd key or an out-of-range value fails with a schema error instead
// of silently training a different experiment.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Experiment holds every tunable of a train run.
type Experiment struct {
	// MinObservations is the induction support threshold.
	MinObservations int `json:"min_observations"`

	// MaxRules is carried for compatibility with the procedure's published
	// parameters; induction does not enforce it.
	MaxRules int `json:"max_rules"`

	// Epochs is the number of competitive-training passes.
	Epochs int `json:"epochs"`

	// LearningRate scales each vertex shift.
	LearningRate float64 `json:"learning_rate"`

	// Seed drives shuffling and splitting.
	Seed uint64 `json:"seed"`

	// TrainFraction is the holdout split; 1 trains and evaluates on the
	// full dataset.
	TrainFraction float64 `json:"train_fraction"`

	// Header marks the first CSV record as column names.
	Header bool `json:"header"`

	// LabelColumn is the zero-based label column; -1 means the last.
	LabelColumn int `json:"label_column"`
}

// Default returns the parameters the original experiment used, with a full
// train/evaluate overlap and the label in the last column.
func Default() Experiment {
	return Experiment{
		MinObservations: 10,
		MaxRules:        10,
		Epochs:          1000,
		LearningRate:    0.001,
		Seed:            1,
		TrainFraction:   1,
		LabelColumn:     -1,
	}
}

// schema is the JSON Schema every config file must satisfy. Keys are
// optional (defaults fill the gaps) but unknown keys are rejected.
var schema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"min_observations": map[string]any{"type": "integer", "minimum": 1},
		"max_rules":        map[string]any{"type": "integer", "minimum": 0},
		"epochs":           map[string]any{"type": "integer", "minimum": 0},
		"learning_rate":    map[string]any{"type": "number", "exclusiveMinimum": 0},
		"seed":             map[string]any{"type": "integer", "minimum": 0},
		"train_fraction":   map[string]any{"type": "number", "exclusiveMinimum": 0, "maximum": 1},
		"header":           map[string]any{"type": "boolean"},
		"label_column":     map[string]any{"type": "integer", "minimum": -1},
	},
}

// Load reads path, validates it against the schema, and decodes it over the
// defaults.
func Load(path string) (Experiment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Experiment{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(raw)
}

// Parse validates and decodes a raw JSON config over the defaults.
func Parse(raw []byte) (Experiment, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Experiment{}, fmt.Errorf("config is not valid JSON: %w", err)
	}

	compiled, err := compiledSchema()
	if err != nil {
		return Experiment{}, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return Experiment{}, fmt.Errorf("config validation failed: %w", err)
	}

	exp := Default()
	if err := json.Unmarshal(raw, &exp); err != nil {
		return Experiment{}, fmt.Errorf("decode config: %w", err)
	}
	return exp, nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value, not raw bytes.
	b, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://experiment.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("register schema: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}
