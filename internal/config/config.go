// Package config loads the user-level skz tool configuration.
//
// Tool configuration controls how skz itself behaves (logging, fetch
// timeouts, the git ref used for raw GitHub fetches). Project state lives
// in skz.json and is handled by the project package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// LogLevel specifies the logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat specifies the log output format.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  LogLevel  `toml:"level"`
	Format LogFormat `toml:"format"`
}

// FetchConfig holds registry fetch settings.
type FetchConfig struct {
	// TimeoutSeconds bounds each HTTP request. Zero means the default.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// GitHubRef is the git ref used for raw.githubusercontent.com fetches.
	GitHubRef string `toml:"github_ref"`
}

// Config is the skz tool configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Fetch   FetchConfig   `toml:"fetch"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  LogLevelWarn,
			Format: LogFormatText,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
			GitHubRef:      "main",
		},
	}
}

// Load loads configuration from file, merging with defaults.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDefault loads configuration from the standard location:
// $SKZ_CONFIG if set, else $XDG_CONFIG_HOME/skz/config.toml, else
// ~/.config/skz/config.toml.
func LoadDefault() (*Config, error) {
	if path := os.Getenv("SKZ_CONFIG"); path != "" {
		return Load(path)
	}
	return Load(DefaultPath())
}

// DefaultPath returns the standard tool config path.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "skz", "config.toml")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "skz", "config.toml")
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	if c.Fetch.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	return nil
}

// Timeout returns the per-request fetch timeout.
func (c *Config) Timeout() time.Duration {
	if c.Fetch.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}
