package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/mbarbey/nfgrid/internal/classify"
	"github.com/mbarbey/nfgrid/internal/config"
	"github.com/mbarbey/nfgrid/internal/dataset"
	"github.com/mbarbey/nfgrid/internal/metrics"
	"github.com/mbarbey/nfgrid/internal/progress"
	"github.com/mbarbey/nfgrid/internal/rules"
	"github.com/mbarbey/nfgrid/internal/store"
	"github.com/mbarbey/nfgrid/internal/trainer"
)

var trainCmd = &cobra.Command{
	Use:   "train <data.csv>",
	Short: "Induce, repair, and competitively train a rule set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := experimentFromFlags(cmd)
		if err != nil {
			return err
		}

		ds, err := dataset.LoadCSV(args[0], dataset.CSVOptions{
			Header:      exp.Header,
			LabelColumn: exp.LabelColumn,
		})
		if err != nil {
			return err
		}

		rnd := rand.New(rand.NewPCG(exp.Seed, exp.Seed))
		train, test, err := ds.Split(exp.TrainFraction, rnd)
		if err != nil {
			return err
		}
		if test.Len() == 0 {
			// Full-overlap experiment: evaluate on the training data.
			test = train
		}

		var observer progress.Observer
		quiet, _ := cmd.Flags().GetBool("quiet")
		if !quiet {
			observer = progress.Writer(cmd.ErrOrStderr())
		}

		inducer := rules.Inducer{
			Config: rules.Config{
				MaxRules:        exp.MaxRules,
				MinObservations: exp.MinObservations,
			},
			Observer: observer,
		}
		set, err := inducer.Induce(train.X, train.Y)
		if err != nil {
			return err
		}

		set.Repair()
		progress.Emit(observer, progress.Event{Phase: progress.PhaseRepaired, Rules: set.Len()})

		tr := trainer.Trainer{
			Epochs:       exp.Epochs,
			LearningRate: exp.LearningRate,
			Observer:     observer,
		}
		if err := tr.Train(cmd.Context(), set, train.X, train.Y); err != nil {
			return err
		}

		if set.Len() == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: no rule survived pruning; the model always predicts", rules.NoClass)
		}

		predicted, err := classify.PredictAll(set, test.X)
		if err != nil {
			return err
		}
		report, err := metrics.Evaluate(test.Y, predicted)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report)

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		run := &store.Run{
			Dataset:   args[0],
			Params:    exp,
			RuleCount: set.Len(),
			Accuracy:  report.Accuracy,
		}
		if err := st.Runs().Save(cmd.Context(), run, set); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "run", run.ID)
		return nil
	},
}

// experimentFromFlags builds the experiment parameters: defaults, overlaid
// by --config if given, overlaid by any explicitly set flags.
func experimentFromFlags(cmd *cobra.Command) (config.Experiment, error) {
	exp := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Experiment{}, err
		}
		exp = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("min-obs") {
		exp.MinObservations, _ = flags.GetInt("min-obs")
	}
	if flags.Changed("max-rules") {
		exp.MaxRules, _ = flags.GetInt("max-rules")
	}
	if flags.Changed("epochs") {
		exp.Epochs, _ = flags.GetInt("epochs")
	}
	if flags.Changed("rate") {
		exp.LearningRate, _ = flags.GetFloat64("rate")
	}
	if flags.Changed("seed") {
		exp.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("split") {
		exp.TrainFraction, _ = flags.GetFloat64("split")
	}
	if flags.Changed("header") {
		exp.Header, _ = flags.GetBool("header")
	}
	if flags.Changed("label-col") {
		exp.LabelColumn, _ = flags.GetInt("label-col")
	}
	return exp, nil
}

func init() {
	f := trainCmd.Flags()
	f.String("config", "", "Path to a JSON experiment config")
	f.Int("min-obs", config.Default().MinObservations, "Support threshold for keeping a rule")
	f.Int("max-rules", config.Default().MaxRules, "Declared rule cap (not enforced by induction)")
	f.Int("epochs", config.Default().Epochs, "Competitive training passes")
	f.Float64("rate", config.Default().LearningRate, "Learning rate for vertex shifts")
	f.Uint64("seed", config.Default().Seed, "Shuffle/split seed")
	f.Float64("split", config.Default().TrainFraction, "Fraction of data used for training (1 = evaluate on training data)")
	f.Bool("header", false, "Treat the first CSV record as a header")
	f.Int("label-col", -1, "Zero-based label column (-1 = last)")
	f.Bool("quiet", false, "Suppress progress output")
}
