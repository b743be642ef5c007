package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

// ConfigFile is the per-project configuration file name.
const ConfigFile = "skz.json"

// TestRegistryEnv overrides the configured registry list when set.
// Tests point it at a local server.
const TestRegistryEnv = "SKZ_TEST_REGISTRY"

// DefaultRegistry is the registry written by init.
const DefaultRegistry = "https://skillz.sh/registry"

// DefaultUtilsDir is the utils directory written by init.
const DefaultUtilsDir = "utils"

// Target names accepted in the config's target field.
const (
	TargetOpenCode = "opencode"
	TargetClaude   = "claude"
)

// Config is the per-project skz.json.
type Config struct {
	// Registries lists registry URLs in any supported scheme.
	Registries []string `json:"registries"`

	// Utils is the shared utilities directory, relative to the
	// directory holding this config file.
	Utils string `json:"utils"`

	// Target selects the install target: "opencode", "claude", or
	// "auto"/empty to infer from the config location.
	Target string `json:"target,omitempty"`
}

// DefaultConfig returns the config init writes.
func DefaultConfig(claude bool) *Config {
	cfg := &Config{
		Registries: []string{DefaultRegistry},
		Utils:      DefaultUtilsDir,
	}
	if claude {
		cfg.Target = TargetClaude
	}
	return cfg
}

// Located is a discovered project configuration: the parsed config plus
// where it was found, which determines the utils location and the
// default install target.
type Located struct {
	Config *Config

	// Path is the config file path.
	Path string

	// Dir is the directory holding the config file. Utils and installed
	// files are resolved against it, so config and skills travel
	// together.
	Dir string

	// UtilsPath is the absolute shared utilities directory.
	UtilsPath string

	// Legacy is true when the config was found at the project root.
	Legacy bool

	// Claude is true when the config was found under .claude.
	Claude bool
}

// Target returns the effective install target. An explicit config value
// wins; otherwise the config location decides.
func (l *Located) Target() string {
	switch l.Config.Target {
	case TargetOpenCode, TargetClaude:
		return l.Config.Target
	}
	if l.Claude {
		return TargetClaude
	}
	return TargetOpenCode
}

// candidate is one probe location for the project config.
type candidate struct {
	dir    string
	legacy bool
	claude bool
}

// Find probes the known config locations in priority order and returns
// the first one that exists and parses. Unparsable candidates are skipped
// in favor of the next location. No parsable candidate returns
// ConfigNotFound. The test registry override applies here so every
// command sees it without it ever being written back to disk.
func Find(projectDir string) (*Located, error) {
	candidates := []candidate{
		{dir: filepath.Join(projectDir, ".opencode")},
		{dir: filepath.Join(projectDir, ".claude"), claude: true},
		{dir: projectDir, legacy: true},
	}

	for _, c := range candidates {
		path := filepath.Join(c.dir, ConfigFile)
		cfg, err := Load(path)
		if err != nil {
			continue
		}
		if override := os.Getenv(TestRegistryEnv); override != "" {
			cfg.Registries = []string{override}
		}
		return &Located{
			Config:    cfg,
			Path:      path,
			Dir:       c.dir,
			UtilsPath: filepath.Join(c.dir, cfg.UtilsOrDefault()),
			Legacy:    c.legacy,
			Claude:    c.claude,
		}, nil
	}

	return nil, skzerr.ConfigNotFound()
}

// UtilsOrDefault returns the configured utils directory name, defaulted.
func (c *Config) UtilsOrDefault() string {
	if c.Utils == "" {
		return DefaultUtilsDir
	}
	return c.Utils
}

// Load reads and parses one config file as stored on disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, skzerr.ConfigNotFound().WithDetail("path", path)
		}
		return nil, skzerr.IORead(path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, skzerr.ConfigParse(path, err)
	}

	return &cfg, nil
}

// Save writes a config file, creating its directory as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return skzerr.IOWrite(path, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return skzerr.IOWrite(path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return skzerr.IOWrite(path, err)
	}
	return nil
}
