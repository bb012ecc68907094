// Package config loads userbook configuration from .userbook/config.yaml.
// A missing file means defaults; a present file must parse. Environment
// variables override the file so scripts can redirect the data file without
// editing config.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDirName is the per-directory configuration folder.
const ConfigDirName = ".userbook"

// Config holds all userbook configuration.
type Config struct {
	// DataFile is the snapshot file the store persists to.
	DataFile string `yaml:"data_file"`

	// Logging controls the zap level used by the CLI.
	Logging LoggingConfig `yaml:"logging"`

	// UI controls terminal rendering.
	UI UIConfig `yaml:"ui"`

	// Audit controls the mutation audit trail.
	Audit AuditConfig `yaml:"audit"`
}

// LoggingConfig configures CLI logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// UIConfig configures terminal rendering.
type UIConfig struct {
	Theme string `yaml:"theme"` // light or dark
}

// AuditConfig configures the append-only audit trail of mutations.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DataFile: "users_data.txt",
		Logging:  LoggingConfig{Level: "info"},
		UI:       UIConfig{Theme: "dark"},
		Audit: AuditConfig{
			Enabled: false,
			Path:    filepath.Join(ConfigDirName, "audit.jsonl"),
		},
	}
}

// Path returns the config file location under dir.
func Path(dir string) string {
	return filepath.Join(dir, ConfigDirName, "config.yaml")
}

// Load reads the config file under dir, falling back to defaults when it is
// absent, then applies environment overrides. A file that exists but does
// not parse is an error; silently running with defaults would hide typos.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(dir))
	switch {
	case os.IsNotExist(err):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", Path(dir), err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnvOverrides layers environment variables over the file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("USERBOOK_DATA_FILE"); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv("USERBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("USERBOOK_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// applyDefaults fills fields a partial config file left empty.
func (c *Config) applyDefaults() {
	def := Default()
	if c.DataFile == "" {
		c.DataFile = def.DataFile
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.Audit.Path == "" {
		c.Audit.Path = def.Audit.Path
	}
}

// Save writes the config file under dir, creating the config directory if
// needed. Used by `userbook init` and by tests.
func (c *Config) Save(dir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, ConfigDirName), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(Path(dir), data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
