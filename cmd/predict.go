package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbarbey/nfgrid/internal/classify"
	"github.com/mbarbey/nfgrid/internal/dataset"
	"github.com/mbarbey/nfgrid/internal/metrics"
	"github.com/mbarbey/nfgrid/internal/rules"
	"github.com/mbarbey/nfgrid/internal/store"
)

var predictCmd = &cobra.Command{
	Use:   "predict <observations.csv>",
	Short: "Classify observations with a stored model",
	Long: "Classify a CSV of numeric observations using a trained model. With\n" +
		"--labeled the file's label column is compared against the predictions\n" +
		"and evaluation metrics are printed instead of the labels.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, _, err := loadModel(cmd)
		if err != nil {
			return err
		}

		header, _ := cmd.Flags().GetBool("header")
		labeled, _ := cmd.Flags().GetBool("labeled")

		if labeled {
			labelCol, _ := cmd.Flags().GetInt("label-col")
			ds, err := dataset.LoadCSV(args[0], dataset.CSVOptions{Header: header, LabelColumn: labelCol})
			if err != nil {
				return err
			}
			predicted, err := classify.PredictAll(set, ds.X)
			if err != nil {
				return err
			}
			report, err := metrics.Evaluate(ds.Y, predicted)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report)
			return nil
		}

		data, err := dataset.LoadMatrix(args[0], header)
		if err != nil {
			return err
		}
		predicted, err := classify.PredictAll(set, data)
		if err != nil {
			return err
		}
		for _, label := range predicted {
			fmt.Fprintln(cmd.OutOrStdout(), string(label))
		}
		return nil
	},
}

// loadModel opens the store and loads the rule set for --run, or the most
// recent run when the flag is unset.
func loadModel(cmd *cobra.Command) (*rules.Set, *store.Run, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	repo := st.Runs()
	ctx := cmd.Context()

	runID, _ := cmd.Flags().GetString("run")
	var run *store.Run
	if runID == "" {
		run, err = repo.Latest(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("no trained runs in the store; run `nfgrid train` first")
		}
	} else {
		run, err = repo.Get(ctx, runID)
	}
	if err != nil {
		return nil, nil, err
	}

	set, err := repo.Model(ctx, run.ID)
	if err != nil {
		return nil, nil, err
	}
	return set, run, nil
}

func init() {
	f := predictCmd.Flags()
	f.String("run", "", "Run ID to load (default: most recent)")
	f.Bool("header", false, "Treat the first CSV record as a header")
	f.Bool("labeled", false, "Input includes a label column; print metrics instead of predictions")
	f.Int("label-col", -1, "Zero-based label column with --labeled (-1 = last)")
}
