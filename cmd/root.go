package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rpgo/property-projector/internal/calculation"
	"github.com/rpgo/property-projector/internal/config"
	"github.com/rpgo/property-projector/internal/domain"
	"github.com/rpgo/property-projector/internal/marketdata"
	"github.com/rpgo/property-projector/internal/output"

	"github.com/spf13/cobra"
)

var (
	flagConfig     string
	flagFormat     string
	flagOutput     string
	flagVerbose    bool
	flagDataDir    string
	flagSeed       int64
	flagRuns       int
	flagLatestRate bool
)

var rootCmd = &cobra.Command{
	Use:   "property-projector",
	Short: "Loan amortization and property value projections",
	Long: "Expand a fixed-rate loan into its amortization schedule, compare payment options, " +
		"and project the property's value by resampling historical index returns.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "config.yaml", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "console", "Output format (console, console-verbose, json, csv, summary-csv, all)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Write timestamped report files to this directory instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log calculation details to stderr")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory of series CSV files (overrides data.path)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Random seed (overrides simulation.seed)")
	rootCmd.PersistentFlags().IntVar(&flagRuns, "runs", 0, "Number of simulated runs (overrides simulation.run_count)")
	rootCmd.PersistentFlags().BoolVar(&flagLatestRate, "latest-rate", false, "Use the most recent observation of data.rate_series as the loan rate")
}

// newLogger builds the leveled logger handed to the engines.
func newLogger(w io.Writer) calculation.Logger {
	return calculation.NewConsoleLogger(w, flagVerbose)
}

// loadConfig reads the configuration file and applies command line overrides.
func loadConfig() (*domain.Configuration, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		cfg.Data.Path = flagDataDir
	}
	if flagSeed != 0 {
		cfg.Simulation.Seed = flagSeed
	}
	if flagRuns != 0 {
		cfg.Simulation.RunCount = flagRuns
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// runProjection is the shared path of every command: load the configuration,
// compute the requested sections, and render them.
func runProjection(cmd *cobra.Command, sections calculation.Sections) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())
	engine := calculation.NewProjectionEngine(marketdata.NewCSVProvider(cfg.Data.Path))
	engine.SetLogger(logger)

	if flagLatestRate {
		if err := engine.ApplyLatestRate(cfg); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := engine.Run(ctx, cfg, sections)
	if err != nil {
		return err
	}

	if flagOutput == "" {
		if flagFormat == "all" {
			return fmt.Errorf("%w: \"all\" requires --output", output.ErrUnsupportedFormat)
		}
		return output.Render(cmd.OutOrStdout(), report, flagFormat)
	}
	paths, err := output.GenerateReport(report, flagFormat, flagOutput)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Infof("wrote %s", p)
	}
	return nil
}
