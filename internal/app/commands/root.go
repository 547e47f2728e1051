// Package commands implements the secmaster command line.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"securities_master/internal/platform/config"
	"securities_master/internal/platform/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	// cfg and log are set by the root PersistentPreRunE before any RunE.
	cfg *config.Config
	log *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "secmaster",
	Short: "Securities master database loader",
	Long: `Builds and serves a local securities master database.

Jobs:
• symbols   scrape the S&P 500 constituents and reconcile the symbol table
• prices    download daily bars and upsert them per symbol
• show      print the latest stored bars of one ticker
• futures   download futures contracts and build a continuous series
• serve     read-only HTTP API over the stored data`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and runs it. Errors
// are logged; the caller decides the exit code.
func Execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		l := log
		if l == nil {
			l = slog.Default()
		}
		l.Error("command failed", "command", commandName(), "error", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cmd.Context(), configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	cfg = c

	l, runID := logger.WithRunID(logger.New(os.Stderr, c.Logging.Level, c.Logging.Format))
	log = l.With("command", cmd.Name())
	slog.SetDefault(log)
	log.Debug("configuration loaded", "run_id", runID, "driver", c.Database.Driver)
	return nil
}

func commandName() string {
	if c, _, err := rootCmd.Find(os.Args[1:]); err == nil {
		return c.Name()
	}
	return rootCmd.Name()
}
