package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mbarbey/nfgrid/internal/rules"
)

// CSVOptions controls how a CSV file is interpreted.
type CSVOptions struct {
	// Header skips the first record.
	Header bool

	// LabelColumn is the zero-based index of the class-label column.
	// Negative means the last column.
	LabelColumn int
}

// LoadCSV reads a labeled dataset from a CSV file. Every column except the
// label column must parse as a float.
func LoadCSV(path string, opts CSVOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	d, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// LoadMatrix reads an unlabeled observation matrix: every column must parse
// as a float. Used for prediction input.
func LoadMatrix(path string, header bool) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open observations: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: read csv: %w", path, err)
	}
	if header && len(records) > 0 {
		records = records[1:]
	}

	out := make([][]float64, 0, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for col, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %d: %w", path, i+1, col+1, err)
			}
			row[col] = v
		}
		out = append(out, row)
	}
	return out, nil
}

// ReadCSV parses a labeled dataset from r.
func ReadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if opts.Header && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no data rows")
	}

	width := len(records[0])
	if width < 2 {
		return nil, fmt.Errorf("need at least one feature column and one label column, got %d columns", width)
	}
	labelCol := opts.LabelColumn
	if labelCol < 0 {
		labelCol = width - 1
	}
	if labelCol >= width {
		return nil, fmt.Errorf("label column %d out of range for %d columns", labelCol, width)
	}

	d := &Dataset{}
	for i, rec := range records {
		row := make([]float64, 0, width-1)
		for col, field := range rec {
			if col == labelCol {
				d.Y = append(d.Y, rules.Label(field))
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, col+1, err)
			}
			row = append(row, v)
		}
		d.X = append(d.X, row)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
