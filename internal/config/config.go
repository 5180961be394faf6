// Package config loads the modelreg command-line configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = ".modelreg.yaml"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the top-level configuration structure
type Config struct {
	// Root is the repository root to validate. Relative paths are resolved
	// against the directory holding the configuration file.
	Root string `yaml:"root"`

	// Format selects the report format: "text" or "json".
	Format string `yaml:"format"`

	CollectAll          bool `yaml:"collectAll"`
	MaxErrors           int  `yaml:"maxErrors"`
	StrictVersionLayout bool `yaml:"strictVersionLayout"`
	NoColor             bool `yaml:"noColor"`
	Verbose             bool `yaml:"verbose"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Root:   ".",
		Format: FormatText,
	}
}

// Load loads the configuration from a file. Unknown keys are rejected.
// Values are not validated: callers merge command-line overrides first and
// then call Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid format: %q, must be %q or %q", c.Format, FormatText, FormatJSON)
	}
	if c.MaxErrors < 0 {
		return errors.New("maxErrors must not be negative")
	}
	if c.MaxErrors > 0 && !c.CollectAll {
		return errors.New("maxErrors requires collectAll")
	}
	return nil
}
