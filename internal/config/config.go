// Package config loads program configuration: an embedded default file
// overlaid with an optional user file.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"github.com/robert-malhotra/asdf-fixtures/asdf"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	LibraryConfig struct {
		Name     string `yaml:"name" validate:"required"`
		Version  string `yaml:"version" validate:"required"`
		Author   string `yaml:"author,omitempty"`
		Homepage string `yaml:"homepage,omitempty" validate:"omitempty,url"`
	}

	WriterConfig struct {
		BlockIndex  bool          `yaml:"block_index"`
		Checksums   bool          `yaml:"checksums"`
		Compression string        `yaml:"compression,omitempty" validate:"omitempty,oneof=zlib lz4"`
		Library     LibraryConfig `yaml:"library"`
	}

	Config struct {
		Version     int           `yaml:"version" validate:"eq=1"`
		FixturesDir string        `yaml:"fixtures_dir" validate:"required"`
		Writer      WriterConfig  `yaml:"writer"`
		Logging     LoggingConfig `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) error {
	// Unknown keys are most likely typos, refuse them
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// LoadConfiguration reads the configuration file at path, superimposes its
// values on top of the embedded defaults and validates the result. An empty
// path yields the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg := &Config{}
	if err := unmarshalConfig(defaultConfig, cfg); err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}

	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshalConfig(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}

	if err := gencfg.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the embedded configuration file.
func Default() []byte {
	return bytes.Clone(defaultConfig)
}

// Dump renders cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// WriterOptions translates the writer section into ASDF encoding options.
func (c *Config) WriterOptions() []asdf.Option {
	lib := c.Writer.Library
	return []asdf.Option{
		asdf.WithBlockIndex(c.Writer.BlockIndex),
		asdf.WithChecksums(c.Writer.Checksums),
		asdf.WithCompression(c.Writer.Compression),
		asdf.WithLibrary(asdf.Software{
			Name:     lib.Name,
			Version:  lib.Version,
			Author:   lib.Author,
			Homepage: lib.Homepage,
		}),
	}
}
