package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored training runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		runs, err := st.Runs().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs yet")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-36s  %-19s  %-24s  %5s  %8s\n",
			"ID", "Created", "Dataset", "Rules", "Accuracy")
		for _, r := range runs {
			ds := r.Dataset
			if len(ds) > 24 {
				ds = ds[:21] + "..."
			}
			fmt.Fprintf(out, "%-36s  %-19s  %-24s  %5d  %8.4f\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), ds, r.RuleCount, r.Accuracy)
		}
		fmt.Fprintf(out, "\n%d runs\n", len(runs))
		return nil
	},
}
