// Package config loads the vsh configuration from a TOML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mwantia/vsh"
	"github.com/mwantia/vsh/log"
	"github.com/pelletier/go-toml/v2"
)

// FileExtTOML is the file extension of configuration files.
const FileExtTOML = ".toml"

type Config struct {
	Prompt    string            `toml:"prompt"`
	Log       LogConfig         `toml:"log"`
	Inventory InventoryConfig   `toml:"inventory"`
	Aliases   map[string]string `toml:"aliases"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	JSON       bool   `toml:"json"`
	NoTerminal bool   `toml:"no_terminal"`
}

type InventoryConfig struct {
	// Address of the storage backend, e.g. "sqlite:///var/lib/vsh/inventory.db"
	Address string `toml:"address"`
	// Seed is an optional YAML file applied after opening the inventory
	Seed string `toml:"seed"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Prompt: "{cwd}> ",
		Log: LogConfig{
			Level: "info",
		},
		Inventory: InventoryConfig{
			Address: "memory:",
		},
		Aliases: make(map[string]string),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/vsh/config.toml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}

	return filepath.Join(dir, "vsh", "config"+FileExtTOML)
}

// Load reads the configuration file at path over the defaults and applies
// environment overrides last. An empty path uses DefaultPath, which may be
// missing.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
	default:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// loadFromEnv applies VSH_* environment variables.
func (c *Config) loadFromEnv() error {
	values := map[string]*string{
		"VSH_PROMPT":    &c.Prompt,
		"VSH_LOG_LEVEL": &c.Log.Level,
		"VSH_LOG_FILE":  &c.Log.File,
		"VSH_INVENTORY": &c.Inventory.Address,
		"VSH_SEED":      &c.Inventory.Seed,
	}
	for key, target := range values {
		if value, exists := os.LookupEnv(key); exists {
			*target = value
		}
	}

	bools := map[string]*bool{
		"VSH_LOG_JSON":        &c.Log.JSON,
		"VSH_LOG_NO_TERMINAL": &c.Log.NoTerminal,
	}
	for key, target := range bools {
		value, exists := os.LookupEnv(key)
		if !exists {
			continue
		}

		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: '%s'", key, value)
		}
		*target = parsed
	}

	return nil
}

// Validate checks values that cannot be verified while decoding.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Inventory.Address == "" {
		return fmt.Errorf("inventory address must not be empty")
	}

	return nil
}

// NewLogger creates the root logger described by the configuration.
func (c *Config) NewLogger(name string) (*log.Logger, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	opts := make([]log.LoggerOption, 0)
	if c.Log.File != "" {
		opts = append(opts, log.WithFile(c.Log.File))
	}
	if c.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	if c.Log.NoTerminal {
		opts = append(opts, log.WithoutTerminal())
	}

	return log.NewLogger(name, level, opts...), nil
}

// ShellOptions returns the shell options described by the configuration.
func (c *Config) ShellOptions() []vsh.ShellOption {
	opts := []vsh.ShellOption{
		vsh.WithPrompt(c.Prompt),
	}
	for name, target := range c.Aliases {
		opts = append(opts, vsh.WithAlias(name, target))
	}

	return opts
}
