package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SettingsBackend selects where user settings are persisted.
type SettingsBackend string

const (
	BackendYAML   SettingsBackend = "yaml"
	BackendSQLite SettingsBackend = "sqlite"
	BackendMemory SettingsBackend = "memory"
)

const DefaultRenderScale = 2.5

type Config struct {
	SettingsBackend SettingsBackend `yaml:"SettingsBackend"`
	SettingsPath    string          `yaml:"SettingsPath"`
	DatabasePath    string          `yaml:"DatabasePath"`
	OutputDir       string          `yaml:"OutputDir"`
	LogLevel        string          `yaml:"LogLevel"`
	RenderScale     float64         `yaml:"RenderScale"`

	// IANA zone used to pick the current month, empty means local time
	TimeZone string `yaml:"TimeZone"`
}

// Environment variables that override the file.
const (
	EnvSettingsBackend = "TIMESHEET_SETTINGS_BACKEND"
	EnvSettingsPath    = "TIMESHEET_SETTINGS_PATH"
	EnvDatabasePath    = "TIMESHEET_DATABASE_PATH"
	EnvOutputDir       = "TIMESHEET_OUTPUT_DIR"
	EnvLogLevel        = "TIMESHEET_LOG_LEVEL"
)

// Load reads ~/.timesheet.yaml.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads the config at path, then applies a .env file from the
// working directory and TIMESHEET_* environment variables. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := getDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	cfg.applyEnv()

	// Apply defaults for values the file blanked out
	defaults := getDefaultConfig()
	if cfg.SettingsBackend == "" {
		cfg.SettingsBackend = defaults.SettingsBackend
	}
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = defaults.SettingsPath
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaults.DatabasePath
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaults.OutputDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.RenderScale == 0 {
		cfg.RenderScale = defaults.RenderScale
	}

	cfg.SettingsPath = expandHome(cfg.SettingsPath)
	cfg.DatabasePath = expandHome(cfg.DatabasePath)
	cfg.OutputDir = expandHome(cfg.OutputDir)

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSettingsBackend); v != "" {
		c.SettingsBackend = SettingsBackend(strings.ToLower(v))
	}
	if v := os.Getenv(EnvSettingsPath); v != "" {
		c.SettingsPath = v
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

func SaveTo(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultPath is ~/.timesheet.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".timesheet.yaml")
}

func getDefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		SettingsBackend: BackendYAML,
		SettingsPath:    filepath.Join(home, ".timesheet", "settings.yaml"),
		DatabasePath:    filepath.Join(home, ".timesheet", "settings.db"),
		OutputDir:       ".",
		LogLevel:        "info",
		RenderScale:     DefaultRenderScale,
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// Location returns the configured time zone, or time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}

// Validate checks the configuration for common issues
func (c *Config) Validate() error {
	switch c.SettingsBackend {
	case BackendYAML:
		if c.SettingsPath == "" {
			return &ValidationError{Field: "SettingsPath", Message: "settings path is required for the yaml backend"}
		}
	case BackendSQLite:
		if c.DatabasePath == "" {
			return &ValidationError{Field: "DatabasePath", Message: "database path is required for the sqlite backend"}
		}
	case BackendMemory:
	default:
		return &ValidationError{
			Field:   "SettingsBackend",
			Message: fmt.Sprintf("unknown backend %q (use yaml, sqlite or memory)", c.SettingsBackend),
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "LogLevel", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}

	if c.RenderScale <= 0 {
		return &ValidationError{Field: "RenderScale", Message: "render scale must be positive"}
	}

	if c.OutputDir == "" {
		return &ValidationError{Field: "OutputDir", Message: "output directory is required"}
	}

	if _, err := c.Location(); err != nil {
		return &ValidationError{Field: "TimeZone", Message: err.Error()}
	}

	return nil
}
