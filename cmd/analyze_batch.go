package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/biasscan-cli/internal/dataset"
	"github.com/KaramelBytes/biasscan-cli/internal/logging"
	"github.com/KaramelBytes/biasscan-cli/internal/report"
	"github.com/KaramelBytes/biasscan-cli/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	abColumns []string
	abAll     bool
	abOutDir  string
	abFormat  string
	abWorkers int
	abQuiet   bool
	abLoad    loadFlags
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze the same columns across multiple CSV/TSV/XLSX files with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		if len(abColumns) == 0 && !abAll {
			return fmt.Errorf("select columns with --columns or use --all")
		}
		opt, err := abLoad.options(cmd)
		if err != nil {
			return err
		}
		format := reportFormat(cmd, abFormat)
		workers := workerCount(cmd, abWorkers)
		outDir := abOutDir
		if outDir != "" {
			if outDir, err = utils.ExpandHome(outDir); err != nil {
				return err
			}
			if err := utils.EnsureDir(outDir); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		log := logging.Get().Named("batch")
		total := len(files)
		var failed, flagged int
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			rep, err := analyzeFile(cmd, path, opt, workers)
			if err != nil {
				if ctxErr := cmd.Context().Err(); ctxErr != nil {
					return ctxErr
				}
				failed++
				log.Debug("file skipped", zap.String("path", path), zap.Error(err))
				fmt.Fprintf(os.Stderr, "✗ Skipped %s: %v\n", path, err)
				continue
			}
			flagged += len(rep.BiasedColumns())

			if outDir == "" {
				if abQuiet {
					continue
				}
				data, err := rep.Render(format)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				continue
			}
			base := filepath.Base(path)
			stem := strings.TrimSuffix(base, filepath.Ext(base))
			if abLoad.sheetName != "" {
				stem += "__sheet-" + utils.SafeBase(abLoad.sheetName, "sheet")
			}
			outFile := utils.UniquePath(outDir, stem, reportExt(format))
			if err := report.Export(rep, outFile, format); err != nil {
				return err
			}
			if !abQuiet {
				fmt.Fprintf(out, "✓ Wrote report to %s\n", outFile)
			}
		}

		if !abQuiet {
			fmt.Fprintf(out, "Done: %d file(s) analyzed, %d skipped, %d column(s) flagged\n", total-failed, failed, flagged)
		}
		if failed == total {
			return fmt.Errorf("all %d file(s) failed", total)
		}
		return nil
	},
}

// expandInputs resolves globs and literal paths, dropping duplicates, sorted.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func analyzeFile(cmd *cobra.Command, path string, opt dataset.Options, workers int) (*report.Report, error) {
	tab, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	if !abQuiet {
		for _, w := range tab.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
		}
	}
	cols, err := selectColumns(tab, abColumns, abAll)
	if err != nil {
		return nil, err
	}
	rep, err := report.Build(cmd.Context(), tab.Name, cols, report.Options{Workers: workers})
	if err != nil {
		return nil, err
	}
	rep.Warnings = tab.Warnings
	return rep, nil
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringSliceVarP(&abColumns, "columns", "c", nil, "comma-separated column names to analyze in every file (repeatable)")
	analyzeBatchCmd.Flags().BoolVar(&abAll, "all", false, "analyze every column of every file")
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory to write one report per file")
	analyzeBatchCmd.Flags().StringVar(&abFormat, "format", "text", "report format: text|json")
	analyzeBatchCmd.Flags().IntVar(&abWorkers, "workers", 4, "columns analyzed in parallel")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
	abLoad.register(analyzeBatchCmd)
}
