// Package config loads project settings from autoui.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"src.autoui.dev/pkg/fallback"
)

// FileName is the name of the settings file looked up next to source files.
const FileName = "autoui.yaml"

// Config holds project settings.
type Config struct {
	// Package clause of generated Go source.
	Package string `yaml:"package"`
	// Name of the code generation backend.
	Backend string `yaml:"backend"`
	// Overrides of the backend type map, from source type to target type.
	Types map[string]string `yaml:"types"`
	// Whether conversion and extraction reject incomplete input.
	Strict bool `yaml:"strict"`
	Dev    Dev  `yaml:"dev"`
}

// Dev holds settings of the development server.
type Dev struct {
	Addr     string        `yaml:"addr"`
	Debounce time.Duration `yaml:"debounce"`
	// Path of the state database.
	Store string `yaml:"store"`
}

// Default returns the default settings.
func Default() *Config {
	return &Config{
		Package: "main",
		Backend: "go",
		Dev: Dev{
			Addr:     "localhost:7331",
			Debounce: 100 * time.Millisecond,
			Store:    ".autoui.db",
		},
	}
}

// Policy returns the fallback policy selected by the Strict setting.
func (c *Config) Policy() fallback.Policy {
	if c.Strict {
		return fallback.Strict
	}
	return fallback.Default
}

// Parse parses settings, filling in defaults for missing ones. Unknown keys
// are errors.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, err
	}
	if c.Dev.Debounce < 0 {
		return nil, fmt.Errorf("dev.debounce must not be negative, got %v", c.Dev.Debounce)
	}
	return c, nil
}

// Load reads settings from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find loads the settings for a source file: from explicit if it is not
// empty, and otherwise from the autoui.yaml in the directory of src, if there
// is one. Without a settings file it returns the defaults.
func Find(src, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	c, err := Load(filepath.Join(filepath.Dir(src), FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}
