// Package main provides the CLI entry point for xlmerge.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlmerge-go/internal/config"
	"github.com/ukaji3/xlmerge-go/internal/logging"
)

var (
	configPath string

	cfg      *config.Config
	logger   *slog.Logger
	closeLog = func() error { return nil }
)

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlmerge",
		Short: "Merge time-indexed spreadsheet exports using a column naming rule table",
		Long: `xlmerge merges several sensor/process data exports (xlsx or csv) into one
workbook. A rule table renames and classifies columns by node and parameter;
the result is annotated with out-of-range markers and rendered with node
borders, range headers and colour scales.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: ./xlmerge.yaml or ~/.xlmerge/config.yaml)")
	flags.String("rules", "", "Rule table file (.xlsx or .csv)")
	flags.String("time-column", "", "Label of the time key column")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-output", "", "Log output: console, file, both")

	rootCmd.AddCommand(
		newMergeCmd(),
		newParamsCmd(),
		newNodesCmd(),
		newTimeRangeCmd(),
		newRangesCmd(),
	)
	return rootCmd
}

// setup loads the configuration and initialises logging before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err = logging.New(logging.Options{
		Level:    cfg.Logging.Level,
		Output:   cfg.Logging.Output,
		FilePath: cfg.LogFilePath(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialise logging: %w", err)
	}
	slog.SetDefault(logger)
	logger.Debug("configuration loaded",
		slog.String("rules", cfg.RulesPath),
		slog.String("time_column", cfg.TimeColumn),
		slog.String("log_output", cfg.Logging.Output))
	return nil
}
