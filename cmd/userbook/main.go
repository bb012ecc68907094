// Package main implements the userbook CLI, an interactive manager for a
// local collection of user records.
//
// Running without arguments starts the interactive menu. Subcommands cover
// the same operations for scripted use. All records live in one snapshot
// file (users_data.txt by default) that is rewritten after every mutation.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"userbook/cmd/userbook/ui"
	"userbook/internal/audit"
	"userbook/internal/config"
	"userbook/internal/store"
)

var (
	// Global flags
	verbose  bool
	baseDir  string
	dataFile string

	// Logger; level is atomic so a config reload can retune it live.
	logger   *zap.Logger
	logLevel zap.AtomicLevel
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "userbook",
	Short: "userbook - local user record manager",
	Long: `userbook maintains a collection of user records keyed by an 11-digit id.

Records are validated on input, held in memory behind a single lock, and
persisted wholesale to a flat snapshot file after every change.

Run without arguments to start the interactive menu.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logLevel = zap.NewAtomicLevelAt(levelFor(cfg.Logging.Level))
		if verbose {
			logLevel.SetLevel(zapcore.DebugLevel)
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Level = logLevel
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// initCmd writes a default config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  `Creates .userbook/config.yaml with default settings in the working directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := baseDir
		if _, err := os.Stat(config.Path(dir)); err == nil {
			return fmt.Errorf("config already exists at %s", config.Path(dir))
		}
		if err := config.Default().Save(dir); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", config.Path(dir))
		return nil
	},
}

// loadConfig reads config for the selected base directory and applies the
// --data flag on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, err
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	return cfg, nil
}

// levelFor maps a config level name to a zap level.
func levelFor(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// app bundles the wired components every command needs.
type app struct {
	cfg    *config.Config
	store  *store.Store
	audit  *audit.Logger
	styles ui.Styles
}

// openApp loads config, opens the snapshot-backed store, and wires the
// audit trail. A corrupt snapshot fails here, before any interaction.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	snap := store.NewSnapshot(cfg.DataFile)
	st, err := store.New(snap, store.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		store:  st,
		styles: ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)),
	}

	if cfg.Audit.Enabled {
		al, err := audit.Open(cfg.Audit.Path)
		if err != nil {
			// Auditing is best effort; the store must stay usable.
			logger.Warn("audit log unavailable", zap.Error(err))
		} else {
			a.audit = al
		}
	}

	return a, nil
}

// close releases the app's file handles.
func (a *app) close() {
	if a.audit != nil {
		_ = a.audit.Close()
	}
}

// recordAudit writes one audit event if auditing is on.
func (a *app) recordAudit(event audit.EventType, userID string, start time.Time, opErr error) {
	a.audit.Record(event, userID, start, opErr)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", ".", "directory holding config and data")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "snapshot file (overrides config)")

	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
