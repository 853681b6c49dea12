// Package config loads and persists recbatch configuration.
//
// Configuration lives in ~/.recbatch/config.yaml (overridable via the
// RECBATCH_CONFIG environment variable). A missing file is not an error;
// defaults apply. CLI flags override file values and are applied by the
// caller after loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rshade/recbatch/internal/batch"
)

// EnvConfigPath overrides the default configuration file location.
const EnvConfigPath = "RECBATCH_CONFIG"

// configDirName is the directory under the user home holding config and logs.
const configDirName = ".recbatch"

// Config is the root recbatch configuration.
type Config struct {
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`

	// configPath is where the config was loaded from and where Save writes.
	configPath string
}

// BatchConfig mirrors batch.Constraints in the config file. Zero values mean
// "use the default"; the file never has to spell out all three limits.
type BatchConfig struct {
	MaxRecordBytes     int `yaml:"max_record_bytes"`
	MaxBatchBytes      int `yaml:"max_batch_bytes"`
	MaxRecordsPerBatch int `yaml:"max_records_per_batch"`
}

// ToConstraints converts the config section to batch.Constraints, filling
// defaults for unset fields.
func (bc BatchConfig) ToConstraints() batch.Constraints {
	c := batch.DefaultConstraints()
	if bc.MaxRecordBytes != 0 {
		c.MaxRecordBytes = bc.MaxRecordBytes
	}
	if bc.MaxBatchBytes != 0 {
		c.MaxBatchBytes = bc.MaxBatchBytes
	}
	if bc.MaxRecordsPerBatch != 0 {
		c.MaxRecordsPerBatch = bc.MaxRecordsPerBatch
	}
	return c
}

// OutputConfig controls default rendering of results.
type OutputConfig struct {
	// DefaultFormat is table, json, or ndjson.
	DefaultFormat string `yaml:"default_format"`
}

// New returns the configuration from the default path, falling back to
// defaults when no file exists or the file cannot be parsed.
func New() *Config {
	cfg := defaultConfig()
	cfg.configPath = DefaultConfigPath()

	data, err := os.ReadFile(cfg.configPath)
	if err != nil {
		// Missing config is the common case on first run.
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		// A malformed file must not brick the CLI; defaults win.
		return defaultConfigAt(cfg.configPath)
	}

	return cfg
}

// LoadFrom reads configuration from an explicit path. Unlike New, a missing
// or malformed file is an error, since the user asked for that file.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := defaultConfig()
	cfg.configPath = path
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to its config path, creating the parent
// directory when needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}

	return nil
}

// ConfigPath returns the path this config was loaded from.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath overrides where Save writes.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// DefaultConfigPath resolves the configuration file location: the
// RECBATCH_CONFIG environment variable when set, else
// ~/.recbatch/config.yaml.
func DefaultConfigPath() string {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(configDirName, "config.yaml")
	}
	return filepath.Join(home, configDirName, "config.yaml")
}

// EnsureLogDir creates the directory for the configured log file.
func (c *Config) EnsureLogDir() error {
	if c.Logging.File == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.Logging.File), 0o750)
}

// defaultConfig returns a Config with all defaults applied.
func defaultConfig() *Config {
	return defaultConfigAt("")
}

func defaultConfigAt(path string) *Config {
	return &Config{
		Batch: BatchConfig{
			MaxRecordBytes:     batch.DefaultMaxRecordBytes,
			MaxBatchBytes:      batch.DefaultMaxBatchBytes,
			MaxRecordsPerBatch: batch.DefaultMaxRecordsPerBatch,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		configPath: path,
	}
}
