package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mbarbey/nfgrid/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "nfgrid",
	Short: "Neuro-fuzzy grid classifier",
	Long: "nfgrid induces a grid of fuzzy rules over labeled tabular data and refines\n" +
		"their membership-function boundaries with winner-take-all competitive learning.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides NFGRID_DB env var)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then NFGRID_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the DB path and opens the run store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	p, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(p)
}
