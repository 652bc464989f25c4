// Package config provides configuration management for scriptutils.
// It supports YAML and TOML configuration files, environment variables, and sensible defaults.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/klauern/scriptutils/internal/diff"
	"github.com/klauern/scriptutils/internal/sync"
	"github.com/klauern/scriptutils/internal/util"
)

// Config represents the complete scriptutils configuration.
type Config struct {
	// Copy configures conflict handling for copies
	Copy CopyConfig `yaml:"copy" toml:"copy"`

	// Diff configures how diffs are rendered when asking to overwrite
	Diff DiffConfig `yaml:"diff" toml:"diff"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output" toml:"output"`

	// Log configures structured logging
	Log LogConfig `yaml:"log" toml:"log"`
}

// CopyConfig holds copy settings.
type CopyConfig struct {
	// DefaultDecision is used when a copy does not choose one (fail, skip, overwrite, ask)
	DefaultDecision string `yaml:"default_decision" toml:"default_decision"`
}

// DiffConfig holds diff settings.
type DiffConfig struct {
	// Context is the number of unchanged lines shown around each change
	Context int `yaml:"context" toml:"context"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" toml:"color"`
	// Verbose enables info-level logging
	Verbose bool `yaml:"verbose" toml:"verbose"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum level (debug, info, warn, error)
	Level string `yaml:"level" toml:"level"`
	// JSON switches console logs to JSON
	JSON bool `yaml:"json" toml:"json"`
	// File additionally writes logs to a rotated file when set
	File string `yaml:"file,omitempty" toml:"file,omitempty"`
	// MaxSizeMB is the size at which File is rotated
	MaxSizeMB int `yaml:"max_size_mb" toml:"max_size_mb"`
	// MaxBackups is how many rotated files are kept
	MaxBackups int `yaml:"max_backups" toml:"max_backups"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Copy: CopyConfig{
			DefaultDecision: string(sync.DecisionFail),
		},
		Diff: DiffConfig{
			Context: diff.DefaultContext,
		},
		Output: OutputConfig{
			Color:   "auto",
			Verbose: false,
		},
		Log: LogConfig{
			Level:      "warn",
			JSON:       false,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.ConfigDir(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	cfg, err := LoadFromPath(FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg = Default()
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path. Files ending in
// .toml are parsed as TOML; anything else as YAML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path, as TOML when the
// path ends in .toml and YAML otherwise.
func (c *Config) SaveToPath(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(c); err != nil {
			return err
		}
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern SCRIPTUTILS_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("SCRIPTUTILS_COPY_DEFAULT_DECISION"); v != "" {
		c.Copy.DefaultDecision = v
	}

	if v := os.Getenv("SCRIPTUTILS_DIFF_CONTEXT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Diff.Context = n
		}
	}

	if v := os.Getenv("SCRIPTUTILS_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("SCRIPTUTILS_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv("SCRIPTUTILS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SCRIPTUTILS_LOG_JSON"); v != "" {
		c.Log.JSON = parseBool(v)
	}
	if v := os.Getenv("SCRIPTUTILS_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("SCRIPTUTILS_LOG_MAX_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Log.MaxSizeMB = n
		}
	}
	if v := os.Getenv("SCRIPTUTILS_LOG_MAX_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Log.MaxBackups = n
		}
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// GetDecision returns the default copy decision, falling back to fail when
// the configured value is not a known decision.
func (c *Config) GetDecision() sync.Decision {
	decision, err := sync.ParseDecision(c.Copy.DefaultDecision)
	if err != nil {
		return sync.DecisionFail
	}
	return decision
}

// LogFile returns the log file path with ~ expanded, or "" when file logging is off.
func (c *Config) LogFile() string {
	return util.ExpandPath(c.Log.File)
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}
