package cmd

import (
	"fmt"

	"github.com/KaramelBytes/biasscan-cli/internal/dataset"
	"github.com/spf13/cobra"
)

var colLoad loadFlags

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List the columns of a dataset with their types and value counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := colLoad.options(cmd)
		if err != nil {
			return err
		}
		tab, err := dataset.Load(args[0], opt)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d rows, %d columns\n", tab.Name, tab.Rows, len(tab.Columns))
		if len(tab.Columns) == 0 {
			fmt.Fprintln(out, "(no columns)")
			return nil
		}
		for _, c := range tab.Describe() {
			fmt.Fprintf(out, "- %s: %s (non-missing %d, missing %d, distinct %d)\n",
				c.Name, c.TypeName, c.NonMissing, c.Missing, c.Distinct)
		}
		for _, w := range tab.Warnings {
			fmt.Fprintf(out, "⚠ %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	colLoad.register(columnsCmd)
}
