// Package config loads the optional user configuration file. Every
// field has a built-in default; the file only needs to exist when the
// user wants to override one.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"rcferry/internal/archive"
	"rcferry/internal/constants"
)

// Config holds user overrides. Zero values mean "use the default".
type Config struct {
	// SourceDir overrides the directory of files to travel
	// (default: ~/.rcferry.d).
	SourceDir string `yaml:"source_dir"`

	// Filter overrides the per-transport compression filter choice
	// ("gzip" or "zstd").
	Filter string `yaml:"filter"`

	// MaxPayloadBytes overrides the encoded-payload ceiling.
	MaxPayloadBytes int `yaml:"max_payload_bytes"`
}

// Path returns the configuration file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rcferry", "config.yaml"), nil
}

// Load reads the configuration file if present. A missing file yields
// the zero config; a malformed file or an unknown filter name is an
// error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a specific configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Filter != "" {
		if _, err := archive.ParseFilter(cfg.Filter); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	return &cfg, nil
}

// FilterOr returns the configured filter, or def when unset.
func (c *Config) FilterOr(def archive.Filter) archive.Filter {
	if c.Filter == "" {
		return def
	}
	f, err := archive.ParseFilter(c.Filter)
	if err != nil {
		return def
	}
	return f
}

// Ceiling returns the configured payload ceiling, or the default.
func (c *Config) Ceiling() int {
	if c.MaxPayloadBytes > 0 {
		return c.MaxPayloadBytes
	}
	return constants.MaxPayloadBytes
}
