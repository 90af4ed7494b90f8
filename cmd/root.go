package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cfgpkg "github.com/KaramelBytes/biasscan-cli/internal/config"
	"github.com/KaramelBytes/biasscan-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "biasscan",
	Short: "BiasScan CLI: flag potentially biased columns in tabular datasets",
	Long: `BiasScan inspects the distribution of values in selected columns of a CSV, TSV or XLSX file
and flags columns where one category or bin dominates, where categories are far from uniform,
or where numeric values are strongly skewed.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.biasscan/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log encoding: console|json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{LogLevel: "warn", LogFormat: "console", Workers: 4, ReportFormat: "text", MaxRows: 100000}
	}
	cfg = c

	lc := logging.Config{Level: cfg.LogLevel, Encoding: cfg.LogFormat}
	if rootCmd.PersistentFlags().Changed("log-format") {
		lc.Encoding = logFormat
	}
	if debug {
		lc.Level = "debug"
		lc.Development = true
	}
	if err := logging.Init(lc); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
	}
}
