package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration. It is built once at the CLI
// boundary and passed down read-only; no stage mutates it.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Output OutputConfig `toml:"output"`
}

// ScanConfig controls jobfolder detection and classification
type ScanConfig struct {
	MarkerFile   string `toml:"marker_file"`
	LogFile      string `toml:"log_file"`
	ResultsFile  string `toml:"results_file"`
	LinesChecked int    `toml:"lines_checked"`
}

// OutputConfig holds report formatting defaults
type OutputConfig struct {
	Format     string `toml:"format"`
	WithStatus bool   `toml:"with_status"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			MarkerFile:   "initial.traj",
			LogFile:      "log.txt",
			ResultsFile:  "results.traj",
			LinesChecked: 20,
		},
		Output: OutputConfig{
			Format:     "json",
			WithStatus: true,
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no stage can work with
func (c *Config) Validate() error {
	if c.Scan.LinesChecked <= 0 {
		return fmt.Errorf("lines_checked must be a positive integer, got %d", c.Scan.LinesChecked)
	}
	if c.Scan.MarkerFile == "" {
		return fmt.Errorf("marker_file must not be empty")
	}
	if c.Scan.LogFile == "" {
		return fmt.Errorf("log_file must not be empty")
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "jobtool", "config.toml")
}
