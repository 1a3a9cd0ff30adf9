// Package main is the entry point for shipyard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/shipyard/internal/config"
	"github.com/samdwyer/shipyard/internal/telemetry"
)

var (
	// Global flags
	verbose    bool
	configPath string
	boardID    string
	logFile    string

	cfg      *config.Config
	logger   *zap.Logger
	shutdown func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "shipyard",
	Short: "Structural integrity checks for tile-built spaceships",
	Long: `shipyard loads a ship built from connector tiles, works out which parts
are still attached after damage, and removes what has broken off.

When a ship splits into several crewed fragments, the player picks the one
that keeps flying.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file for local development
		// This makes HONEYCOMB_SHIPYARD_API_KEY available
		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if boardID != "" {
			cfg.Board = boardID
		}

		logger, err = newLogger(cmd.Name() == "play")
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if cfg.Telemetry.Enabled {
			cfg.Telemetry.ExportEnv()
		}
		shutdown, err = telemetry.Setup(cmd.Context(), cfg.Telemetry.Enabled)
		if err != nil {
			// Not fatal: checks still work without observability.
			logger.Warn("Telemetry setup failed", zap.Error(err))
			shutdown = nil
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shutdown != nil {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("Error shutting down telemetry", zap.Error(err))
			}
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "shipyard.yaml", "Config file")
	rootCmd.PersistentFlags().StringVarP(&boardID, "board", "b", "", "Board outline for ship files that name none")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (play logs nowhere otherwise)")

	resolveCmd.Flags().IntVarP(&keep, "keep", "k", -1, "Index of the fragment to keep when the ship splits")
	resolveCmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the surviving ship to this file")

	rootCmd.AddCommand(checkCmd, resolveCmd, fleetCmd, playCmd, tilesCmd)
}

// newLogger builds the process logger. The board view owns the terminal,
// so interactive sessions only log to a file.
func newLogger(interactive bool) (*zap.Logger, error) {
	if interactive && logFile == "" {
		return zap.NewNop(), nil
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	if logFile != "" {
		zapConfig.OutputPaths = []string{logFile}
	}
	return zapConfig.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
