package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBackendConstants(t *testing.T) {
	if BackendYAML != "yaml" {
		t.Errorf("BackendYAML = %s, want yaml", BackendYAML)
	}
	if BackendSQLite != "sqlite" {
		t.Errorf("BackendSQLite = %s, want sqlite", BackendSQLite)
	}
	if BackendMemory != "memory" {
		t.Errorf("BackendMemory = %s, want memory", BackendMemory)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg, err := LoadFrom(filepath.Join(tmpDir, "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.SettingsBackend != BackendYAML {
		t.Errorf("Default SettingsBackend = %s, want %s", cfg.SettingsBackend, BackendYAML)
	}
	if want := filepath.Join(tmpDir, ".timesheet", "settings.yaml"); cfg.SettingsPath != want {
		t.Errorf("Default SettingsPath = %s, want %s", cfg.SettingsPath, want)
	}
	if want := filepath.Join(tmpDir, ".timesheet", "settings.db"); cfg.DatabasePath != want {
		t.Errorf("Default DatabasePath = %s, want %s", cfg.DatabasePath, want)
	}
	if cfg.OutputDir != "." {
		t.Errorf("Default OutputDir = %s, want .", cfg.OutputDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Default LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.RenderScale != DefaultRenderScale {
		t.Errorf("Default RenderScale = %v, want %v", cfg.RenderScale, DefaultRenderScale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadFileAndExpandHome(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	path := filepath.Join(tmpDir, "custom.yaml")
	content := "SettingsBackend: sqlite\nDatabasePath: ~/data/ts.db\nRenderScale: 3\nTimeZone: Europe/London\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.SettingsBackend != BackendSQLite {
		t.Errorf("SettingsBackend = %s, want sqlite", cfg.SettingsBackend)
	}
	if want := filepath.Join(tmpDir, "data", "ts.db"); cfg.DatabasePath != want {
		t.Errorf("DatabasePath = %s, want %s", cfg.DatabasePath, want)
	}
	if cfg.RenderScale != 3 {
		t.Errorf("RenderScale = %v, want 3", cfg.RenderScale)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want default info", cfg.LogLevel)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/London" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	path := filepath.Join(tmpDir, "custom.yaml")
	if err := os.WriteFile(path, []byte("SettingsBackend: yaml\nLogLevel: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvSettingsBackend, "MEMORY")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvOutputDir, "~/out")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.SettingsBackend != BackendMemory {
		t.Errorf("SettingsBackend = %s, want memory", cfg.SettingsBackend)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if want := filepath.Join(tmpDir, "out"); cfg.OutputDir != want {
		t.Errorf("OutputDir = %s, want %s", cfg.OutputDir, want)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("RenderScale: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() with malformed yaml should fail")
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	path := filepath.Join(tmpDir, "saved.yaml")

	cfg := getDefaultConfig()
	cfg.SettingsBackend = BackendSQLite
	cfg.LogLevel = "error"
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.SettingsBackend != BackendSQLite || loaded.LogLevel != "error" {
		t.Errorf("round trip = %+v", loaded)
	}
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SettingsBackend: BackendYAML,
			SettingsPath:    "/tmp/settings.yaml",
			DatabasePath:    "/tmp/settings.db",
			OutputDir:       ".",
			LogLevel:        "info",
			RenderScale:     2.5,
		}
	}

	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"valid yaml config", func(*Config) {}, ""},
		{"valid memory config", func(c *Config) { c.SettingsBackend = BackendMemory; c.SettingsPath = "" }, ""},
		{"unknown backend", func(c *Config) { c.SettingsBackend = "redis" }, "SettingsBackend"},
		{"yaml without path", func(c *Config) { c.SettingsPath = "" }, "SettingsPath"},
		{"sqlite without path", func(c *Config) { c.SettingsBackend = BackendSQLite; c.DatabasePath = "" }, "DatabasePath"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"zero scale", func(c *Config) { c.RenderScale = 0 }, "RenderScale"},
		{"no output dir", func(c *Config) { c.OutputDir = "" }, "OutputDir"},
		{"bad time zone", func(c *Config) { c.TimeZone = "Mars/Olympus" }, "TimeZone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.edit(cfg)
			err := cfg.Validate()

			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Validate() field = %s, want %s", verr.Field, tt.field)
			}
		})
	}
}
