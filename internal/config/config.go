// Package config loads the fairychess configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"

	"github.com/hailam/fairychess/internal/board"
)

const cfgFile = "fairychess/config.json"

// InvalidConfig reports a configuration value that cannot be used.
type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

// Config holds the user settings.
type Config struct {
	// DefaultPosition is the board notation loaded by the "new" command.
	DefaultPosition string `json:"default_position"`
	// DatabaseDir overrides the database location. Empty means the XDG data
	// directory.
	DatabaseDir string `json:"database_dir"`
	// InMemory keeps saved positions and statistics in memory only.
	InMemory bool `json:"in_memory"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{DefaultPosition: board.StandardPosition}
}

// Load reads the config file from the XDG config directories, falling back
// to the defaults when there is none.
func Load() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		cfg := Default()
		return &cfg, nil
	}
	return LoadFile(absPath)
}

// LoadFile reads the config at path. Fields missing from the file keep their
// default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := readCfgFile(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the default position parses.
func (c *Config) Validate() error {
	if c.DefaultPosition == "" {
		return &InvalidConfig{"default_position must not be empty"}
	}
	if _, err := board.Parse(c.DefaultPosition); err != nil {
		return &InvalidConfig{fmt.Sprintf("default_position: %v", err)}
	}
	return nil
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return c.SaveFile(absPath)
}

// SaveFile writes the config to path.
func (c *Config) SaveFile(path string) error {
	return saveCfgFile(path, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}
	return nil
}
