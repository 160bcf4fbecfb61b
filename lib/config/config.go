// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/boc/lib/boc"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "BOC_CONFIG"

// Compressions lists the names accepted in store.compression.
var Compressions = []string{"auto", "none", "lz4", "zstd"}

// Config is the master configuration for the boc command.
type Config struct {
	// Store configures the content-addressed container store.
	Store StoreConfig `yaml:"store"`

	// Serialize sets the defaults for containers the command writes.
	Serialize SerializeConfig `yaml:"serialize"`

	// Limits bounds what the command will decode.
	Limits LimitsConfig `yaml:"limits"`
}

// StoreConfig configures the container store.
type StoreConfig struct {
	// Root is the store directory.
	// Default: ${HOME}/.cache/boc/store
	Root string `yaml:"root"`

	// Compression is the blob compression: auto, none, lz4 or zstd.
	// "auto" probes each blob and picks the best fit.
	// Default: auto
	Compression string `yaml:"compression"`

	// CacheSize is the number of decoded graphs kept in memory.
	// Default: 256
	CacheSize int `yaml:"cache_size"`
}

// SerializeConfig sets the default container options.
type SerializeConfig struct {
	// Index writes the cell offset table. Default: true
	Index bool `yaml:"index"`

	// CRC32C writes the checksum trailer. Default: true
	CRC32C bool `yaml:"crc32c"`

	// DedupContent merges structurally equal cells. Default: false
	DedupContent bool `yaml:"dedup_content"`
}

// LimitsConfig bounds decoding of untrusted input. Zero means no
// limit.
type LimitsConfig struct {
	// MaxCells is the largest declared cell count accepted.
	// Default: 1048576
	MaxCells int `yaml:"max_cells"`

	// MaxCellData is the largest declared cell data size in bytes.
	// Default: 67108864
	MaxCellData int `yaml:"max_cell_data"`
}

// Default returns the default configuration. Values from a config
// file are merged over it.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Store: StoreConfig{
			Root:        filepath.Join(homeDir, ".cache", "boc", "store"),
			Compression: "auto",
			CacheSize:   256,
		},
		Serialize: SerializeConfig{
			Index:  true,
			CRC32C: true,
		},
		Limits: LimitsConfig{
			MaxCells:    1 << 20,
			MaxCellData: 64 << 20,
		},
	}
}

// Load loads configuration from the file named by BOC_CONFIG. It fails
// when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your boc.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()

	return cfg, nil
}

// Resolve loads the file at path when it is non-empty, otherwise the
// file named by BOC_CONFIG, otherwise returns Default. The result is
// validated.
func Resolve(path string) (*Config, error) {
	var cfg *Config
	var err error
	switch {
	case path != "":
		cfg, err = LoadFile(path)
	case os.Getenv(EnvironmentVariable) != "":
		cfg, err = Load()
	default:
		cfg = Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Store.Root = expandVars(c.Store.Root, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Store.Root == "" {
		errs = append(errs, fmt.Errorf("store.root is required"))
	}
	if !slices.Contains(Compressions, c.Store.Compression) {
		errs = append(errs, fmt.Errorf("store.compression must be one of: %v", Compressions))
	}
	if c.Store.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("store.cache_size must not be negative"))
	}
	if c.Limits.MaxCells < 0 {
		errs = append(errs, fmt.Errorf("limits.max_cells must not be negative"))
	}
	if c.Limits.MaxCellData < 0 {
		errs = append(errs, fmt.Errorf("limits.max_cell_data must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SerializeOptions returns the configured container options.
func (c *Config) SerializeOptions() boc.SerializeOptions {
	return boc.SerializeOptions{
		Index:        c.Serialize.Index,
		CRC32C:       c.Serialize.CRC32C,
		DedupContent: c.Serialize.DedupContent,
	}
}

// DecodeLimits returns the configured decode limits.
func (c *Config) DecodeLimits() boc.Limits {
	return boc.Limits{
		MaxCells:    c.Limits.MaxCells,
		MaxCellData: c.Limits.MaxCellData,
	}
}
