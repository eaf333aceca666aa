// Package config loads debttrack.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "debttrack.yaml"

// Duplicate-name policies for the combined entry flow.
const (
	PolicyReject = "reject"
	PolicyReuse  = "reuse"
)

// Environment variables read by ApplyEnv.
const (
	EnvDBPath          = "DEBTTRACK_DB_PATH"
	EnvExportDir       = "DEBTTRACK_EXPORT_DIR"
	EnvLogLevel        = "LOG_LEVEL"
	EnvDuplicatePolicy = "DEBTTRACK_DUPLICATE_POLICY"
)

// Config represents the top-level debttrack.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
	Ledger   LedgerConfig   `yaml:"ledger"`
}

// DatabaseConfig locates the ledger database file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig controls where workbooks are written.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// LedgerConfig holds bookkeeping policy.
type LedgerConfig struct {
	DuplicatePolicy string `yaml:"duplicate_policy"` // reject | reuse
}

// ReuseExisting reports whether an existing person may be reused by name.
func (c *Config) ReuseExisting() bool {
	return c.Ledger.DuplicatePolicy == PolicyReuse
}

// Load reads a debttrack.yaml file from disk. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "debts.db"},
		Export:   ExportConfig{Dir: "."},
		Log:      LogConfig{Level: "info"},
		Ledger:   LedgerConfig{DuplicatePolicy: PolicyReject},
	}
}

// ApplyEnv loads a .env file if present and overrides cfg with any set
// environment variables.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvDuplicatePolicy); v != "" {
		cfg.Ledger.DuplicatePolicy = strings.ToLower(strings.TrimSpace(v))
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path must not be empty")
	}
	if strings.TrimSpace(c.Export.Dir) == "" {
		return errors.New("export.dir must not be empty")
	}
	switch c.Ledger.DuplicatePolicy {
	case PolicyReject, PolicyReuse:
	default:
		return fmt.Errorf("ledger.duplicate_policy %q: want %s or %s",
			c.Ledger.DuplicatePolicy, PolicyReject, PolicyReuse)
	}
	return nil
}
