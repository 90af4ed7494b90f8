package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/biasscan-cli/internal/dataset"
	"github.com/KaramelBytes/biasscan-cli/internal/report"
	"github.com/KaramelBytes/biasscan-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaColumns    []string
	anaAll        bool
	anaOutputPath string
	anaFormat     string
	anaWorkers    int
	anaFailOnBias bool
	anaLoad       loadFlags
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze selected columns of a CSV/TSV/XLSX file for potential bias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := anaLoad.options(cmd)
		if err != nil {
			return err
		}
		tab, err := dataset.Load(path, opt)
		if err != nil {
			return err
		}
		for _, w := range tab.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
		}
		cols, err := selectColumns(tab, anaColumns, anaAll)
		if err != nil {
			return err
		}
		rep, err := report.Build(cmd.Context(), tab.Name, cols, report.Options{Workers: workerCount(cmd, anaWorkers)})
		if err != nil {
			return err
		}
		rep.Warnings = tab.Warnings

		format := reportFormat(cmd, anaFormat)
		if anaOutputPath != "" {
			outPath, err := utils.ExpandHome(anaOutputPath)
			if err != nil {
				return err
			}
			if err := report.Export(rep, outPath, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", outPath)
		} else {
			data, err := rep.Render(format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}
		if anaFailOnBias {
			if flagged := rep.BiasedColumns(); len(flagged) > 0 {
				return biasError(flagged)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringSliceVarP(&anaColumns, "columns", "c", nil, "comma-separated column names to analyze (repeatable)")
	analyzeCmd.Flags().BoolVar(&anaAll, "all", false, "analyze every column")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to export the report")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "text", "report format: text|json")
	analyzeCmd.Flags().IntVar(&anaWorkers, "workers", 4, "columns analyzed in parallel")
	analyzeCmd.Flags().BoolVar(&anaFailOnBias, "fail-on-bias", false, "exit non-zero when any column is flagged")
	anaLoad.register(analyzeCmd)
}
