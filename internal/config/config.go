package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFile = ".launchgen.yaml"
	OutputDir  = ".vscode"
	OutputFile = "launch.json"
	DevURL     = "http://localhost:5173"
)

// Config represents the optional per-project launchgen settings
type Config struct {
	Version int          `yaml:"version"`
	Output  OutputConfig `yaml:"output"`
	Web     WebConfig    `yaml:"web"`
	// Strict aborts the run on a malformed Cargo.toml instead of skipping it
	Strict bool `yaml:"strict"`
}

// OutputConfig controls where the launch file is written, relative to the scan root
type OutputConfig struct {
	Dir  string `yaml:"dir"`
	File string `yaml:"file"`
}

// WebConfig holds browser launch options
type WebConfig struct {
	URL string `yaml:"url"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: 1,
		Output: OutputConfig{
			Dir:  OutputDir,
			File: OutputFile,
		},
		Web: WebConfig{
			URL: DevURL,
		},
	}
}

// Path returns the config file location for a scan root
func Path(root string) string {
	return filepath.Join(root, ConfigFile)
}

// Exists checks if a config file is present at root
func Exists(root string) bool {
	info, err := os.Stat(Path(root))
	return err == nil && !info.IsDir()
}

// Load reads <root>/.launchgen.yaml. A missing file yields the defaults.
func Load(root string) (*Config, error) {
	path := Path(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for missing values
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills in missing configuration with sensible defaults
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defaults.Output.Dir
	}
	if c.Output.File == "" {
		c.Output.File = defaults.Output.File
	}
	if c.Web.URL == "" {
		c.Web.URL = defaults.Web.URL
	}
}

// OutputPath returns the directory the launch file is written to. Relative
// output dirs are resolved against root.
func (c *Config) OutputPath(root string) string {
	if filepath.IsAbs(c.Output.Dir) {
		return c.Output.Dir
	}
	return filepath.Join(root, c.Output.Dir)
}

// Save writes the configuration to <root>/.launchgen.yaml
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(root), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
