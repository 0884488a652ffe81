// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles adlc project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// Defaults applied to fields left empty.
const (
	DefaultOutput      = "adl"
	DefaultFormat      = "rust"
	DefaultParallelism = 4
	DefaultCrateRoot   = "crate"
)

// Config represents the adlc.yaml project configuration file.
type Config struct {
	Version     int        `yaml:"version"`
	Path        string     `yaml:"path,omitempty"`
	Output      string     `yaml:"output,omitempty"`
	Format      string     `yaml:"format,omitempty"`
	Parallelism int        `yaml:"parallelism,omitempty"`
	Rust        RustConfig `yaml:"rust,omitempty"`
}

// RustConfig holds the options of the Rust target.
type RustConfig struct {
	// Derives are appended after Serialize and Deserialize.
	Derives []string `yaml:"derives,omitempty"`
	// ReservedWords are escaped in addition to the Rust keywords.
	ReservedWords []string `yaml:"reservedWords,omitempty"`
	// CrateRoot prefixes references to types of other modules.
	CrateRoot string `yaml:"crateRoot,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: CurrentConfigVersion}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// ApplyDefaults fills empty fields with their default values.
func (c *Config) ApplyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Parallelism == 0 {
		c.Parallelism = DefaultParallelism
	}
	if c.Rust.CrateRoot == "" {
		c.Rust.CrateRoot = DefaultCrateRoot
	}
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.Path == "" {
		return errors.New("path is required")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	for _, d := range c.Rust.Derives {
		if d == "" {
			return errors.New("rust.derives: empty derive")
		}
		if slices.Contains([]string{"Serialize", "Deserialize"}, d) {
			return fmt.Errorf("rust.derives: %s is always derived", d)
		}
	}
	for _, w := range c.Rust.ReservedWords {
		if w == "" {
			return errors.New("rust.reservedWords: empty word")
		}
	}
	return nil
}
