package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbarbey/nfgrid/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Browse a trained rule set",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, run, err := loadModel(cmd)
		if err != nil {
			return err
		}

		title := fmt.Sprintf("%s (run %s)", run.Dataset, run.ID)
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			fmt.Fprint(cmd.OutOrStdout(), inspect.Render(set, title))
			return nil
		}
		return inspect.Run(set, title)
	},
}

func init() {
	f := inspectCmd.Flags()
	f.String("run", "", "Run ID to load (default: most recent)")
	f.Bool("plain", false, "Print the rule set to stdout instead of opening the viewer")
}
