package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != LogLevelWarn {
		t.Errorf("Logging.Level = %s, want warn", cfg.Logging.Level)
	}
	if cfg.Logging.Format != LogFormatText {
		t.Errorf("Logging.Format = %s, want text", cfg.Logging.Format)
	}
	if cfg.Fetch.TimeoutSeconds != 30 {
		t.Errorf("Fetch.TimeoutSeconds = %d, want 30", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Fetch.GitHubRef != "main" {
		t.Errorf("Fetch.GitHubRef = %s, want main", cfg.Fetch.GitHubRef)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[logging]
level = "debug"
format = "json"

[fetch]
timeout_seconds = 5
github_ref = "master"
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != LogLevelDebug {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != LogFormatJSON {
		t.Errorf("Logging.Format = %s, want json", cfg.Logging.Format)
	}
	if cfg.Fetch.TimeoutSeconds != 5 {
		t.Errorf("Fetch.TimeoutSeconds = %d, want 5", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Fetch.GitHubRef != "master" {
		t.Errorf("Fetch.GitHubRef = %s, want master", cfg.Fetch.GitHubRef)
	}
}

func TestLoad_PartialOverridesKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[logging]
level = "debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != LogLevelDebug {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Fetch.GitHubRef != "main" {
		t.Errorf("Fetch.GitHubRef = %s, want main (default)", cfg.Fetch.GitHubRef)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("Load should not fail for non-existent file: %v", err)
	}

	if cfg.Logging.Level != LogLevelWarn {
		t.Errorf("Should return defaults, got level = %s", cfg.Logging.Level)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `invalid = [toml content`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load should fail for invalid TOML")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[logging]
level = "loud"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load should reject an invalid log level")
	}
}

func TestLoadDefault_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[fetch]
github_ref = "develop"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("SKZ_CONFIG", configPath)

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	if cfg.Fetch.GitHubRef != "develop" {
		t.Errorf("Fetch.GitHubRef = %s, want develop", cfg.Fetch.GitHubRef)
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	want := filepath.Join("/xdg", "skz", "config.toml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %s, want %s", got, want)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "valid default config",
			cfg:     Default(),
			wantErr: false,
		},
		{
			name: "invalid level",
			cfg: &Config{
				Logging: LoggingConfig{Level: "loud", Format: LogFormatText},
			},
			wantErr: true,
		},
		{
			name: "invalid format",
			cfg: &Config{
				Logging: LoggingConfig{Level: LogLevelInfo, Format: "xml"},
			},
			wantErr: true,
		},
		{
			name: "negative timeout",
			cfg: &Config{
				Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
				Fetch:   FetchConfig{TimeoutSeconds: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Timeout(t *testing.T) {
	cfg := Default()
	if got := cfg.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", got)
	}

	cfg.Fetch.TimeoutSeconds = 0
	if got := cfg.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() with zero = %v, want 30s default", got)
	}

	cfg.Fetch.TimeoutSeconds = 5
	if got := cfg.Timeout(); got != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", got)
	}
}
