package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/biasscan-cli/internal/bias"
	"github.com/KaramelBytes/biasscan-cli/internal/dataset"
	"github.com/spf13/cobra"
)

// loadFlags are the dataset loading flags shared by commands that read files.
type loadFlags struct {
	delimiter  string
	decimal    string
	thousands  string
	maxRows    int
	sheetName  string
	sheetIndex int
}

func (lf *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&lf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	cmd.Flags().StringVar(&lf.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	cmd.Flags().StringVar(&lf.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	cmd.Flags().IntVar(&lf.maxRows, "max-rows", 100000, "maximum rows to load (0 = unlimited)")
	cmd.Flags().StringVar(&lf.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	cmd.Flags().IntVar(&lf.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

// options merges config defaults with flags that were set explicitly.
func (lf *loadFlags) options(cmd *cobra.Command) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	delim, dec, thou := lf.delimiter, lf.decimal, lf.thousands
	if cfg != nil {
		// 0 from config means unlimited; viper supplies the default.
		opt.MaxRows = cfg.MaxRows
		if !cmd.Flags().Changed("delimiter") {
			delim = cfg.Delimiter
		}
		if !cmd.Flags().Changed("decimal") {
			dec = cfg.DecimalSeparator
		}
		if !cmd.Flags().Changed("thousands") {
			thou = cfg.ThousandsSeparator
		}
	}
	if cmd.Flags().Changed("max-rows") {
		opt.MaxRows = lf.maxRows
	}
	var err error
	if opt.Delimiter, err = dataset.ParseDelimiter(delim); err != nil {
		return opt, err
	}
	if opt.DecimalSeparator, err = dataset.ParseDecimal(dec); err != nil {
		return opt, err
	}
	if opt.ThousandsSeparator, err = dataset.ParseThousands(thou); err != nil {
		return opt, err
	}
	opt.SheetName = lf.sheetName
	opt.SheetIndex = lf.sheetIndex
	return opt, nil
}

// selectColumns resolves --columns/--all against a table.
func selectColumns(tab *dataset.Table, names []string, all bool) ([]*bias.Column, error) {
	if all {
		if len(tab.Columns) == 0 {
			return nil, &dataset.InvalidSelectionError{}
		}
		return tab.Columns, nil
	}
	return tab.Select(names)
}

func workerCount(cmd *cobra.Command, flagVal int) int {
	if cmd.Flags().Changed("workers") || cfg == nil {
		return flagVal
	}
	return cfg.Workers
}

func reportFormat(cmd *cobra.Command, flagVal string) string {
	if cmd.Flags().Changed("format") || cfg == nil || cfg.ReportFormat == "" {
		return flagVal
	}
	return cfg.ReportFormat
}

func reportExt(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return ".bias.json"
	}
	return ".bias.txt"
}

func biasError(cols []string) error {
	return fmt.Errorf("potential bias in %d column(s): %s", len(cols), strings.Join(cols, ", "))
}
