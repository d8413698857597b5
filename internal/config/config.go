// ABOUTME: Configuration management for diary with YAML config loading and env overrides.
// ABOUTME: Handles storage backend selection, data directory resolution, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Storage backend names.
const (
	BackendMarkdown = "markdown"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// ValidBackends lists the accepted storage.backend values.
var ValidBackends = []string{BackendMarkdown, BackendSQLite, BackendMemory}

// Config stores diary configuration loaded from ~/.config/diary/config.yaml.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig selects where entries and rewards are kept between runs.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"DIARY_BACKEND"`
	DataDir string `yaml:"data_dir" env:"DIARY_DATA_DIR"`
}

// IsValidBackend returns true if name is a known storage backend.
func IsValidBackend(name string) bool {
	for _, b := range ValidBackends {
		if b == name {
			return true
		}
	}
	return false
}

// GetBackend returns the configured backend, defaulting to markdown.
func (c *Config) GetBackend() string {
	if c.Storage.Backend == "" {
		return BackendMarkdown
	}
	return strings.ToLower(c.Storage.Backend)
}

// GetDataDir returns the data directory, defaulting to $XDG_DATA_HOME/diary.
func (c *Config) GetDataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return ExpandPath(c.Storage.DataDir)
	}
	return DefaultDataDir()
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if !IsValidBackend(c.GetBackend()) {
		return fmt.Errorf("unknown storage backend %q (valid: %s)", c.Storage.Backend, strings.Join(ValidBackends, ", "))
	}
	return nil
}

// DefaultDataDir returns the default diary data directory.
func DefaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "diary"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "diary", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk and applies DIARY_* environment overrides.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads config from disk without environment overrides.
// Used by setup so env values are not written back to the file.
func LoadFile() (*Config, error) {
	return loadFile()
}

func loadFile() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
