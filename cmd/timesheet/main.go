package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/timesheet/internal/calendar"
	"github.com/timesheet/internal/config"
	"github.com/timesheet/internal/logging"
	"github.com/timesheet/internal/settings"
	"github.com/timesheet/internal/storage"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
	store  *settings.Store
	db     *storage.SettingsDB

	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Printable monthly timesheets",
	Long: `Timesheet lays out a month as a two page A4 timesheet: week tables split at
a configurable day, a payroll deadline taken from the last working days of
the month, and a PDF export.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		slog.SetDefault(logger)

		backend, err := openBackend()
		if err != nil {
			return err
		}
		store, err = settings.Open(backend, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			err := db.Close()
			db = nil
			return err
		}
		return nil
	},
}

func openBackend() (settings.Backend, error) {
	switch cfg.SettingsBackend {
	case config.BackendSQLite:
		return openDatabase()
	case config.BackendMemory:
		return settings.NewMemoryBackend(), nil
	default:
		return settings.NewFileBackend(cfg.SettingsPath), nil
	}
}

// openDatabase opens the SQLite file once per run. It backs the settings
// when configured to and always holds the export history.
func openDatabase() (*storage.SettingsDB, error) {
	if db != nil {
		return db, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	var err error
	db, err = storage.New(cfg.DatabasePath)
	return db, err
}

func historyPath() string {
	return filepath.Join(filepath.Dir(cfg.DatabasePath), "history")
}

// monthArg parses an optional YYYY-MM argument, defaulting to the current
// month in the configured time zone.
func monthArg(args []string) (calendar.Month, error) {
	if len(args) > 0 {
		return calendar.ParseMonth(args[0])
	}
	t, err := today()
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.MonthOf(t), nil
}

// today returns the current time in the configured time zone.
func today() (time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	return now().In(loc), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.timesheet.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(weeksCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(deadlinesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
