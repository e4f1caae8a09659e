// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// API server configuration
	Server ServerConfig `toml:"server"`

	// Community statistics API configuration
	StatsAPI StatsAPIConfig `toml:"stats_api"`

	// Sync pipeline configuration
	Sync SyncConfig `toml:"sync"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // Path to the SQLite file; empty uses the default location
}

// ServerConfig contains REST API server settings.
type ServerConfig struct {
	Port int `toml:"port"` // Listen port for the REST/WebSocket server
}

// StatsAPIConfig contains upstream statistics API settings.
type StatsAPIConfig struct {
	BaseURL string `toml:"base_url"` // Override the API base URL (empty uses the default)
	Tier    string `toml:"tier"`     // Skill tier to pull community stats for
	Region  string `toml:"region"`   // Default region for player lookups
}

// SyncConfig contains sync pipeline settings.
type SyncConfig struct {
	ReplayDir    string `toml:"replay_dir"`    // Replay directory to watch (empty disables the watcher)
	SyncInterval string `toml:"sync_interval"` // Periodic community sync interval (e.g., "6h")
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		StatsAPI: StatsAPIConfig{
			BaseURL: "",
			Tier:    "mid",
			Region:  "us",
		},
		Sync: SyncConfig{
			ReplayDir:    "",
			SyncInterval: "6h",
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configDir returns the per-user configuration directory, creating it
// if needed.
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".hots-companion")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return dir, nil
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DatabasePath resolves the SQLite file location: the configured path
// when set, otherwise the default under the config directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "companion.db"), nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := time.ParseDuration(c.Sync.SyncInterval); err != nil {
		return fmt.Errorf("invalid sync interval %q: %w", c.Sync.SyncInterval, err)
	}

	if c.Sync.ReplayDir != "" {
		if info, err := os.Stat(c.Sync.ReplayDir); err == nil && !info.IsDir() {
			return fmt.Errorf("replay dir is not a directory: %s", c.Sync.ReplayDir)
		}
	}

	return nil
}

// GetSyncInterval returns the community sync interval as a duration.
func (c *Config) GetSyncInterval() (time.Duration, error) {
	return time.ParseDuration(c.Sync.SyncInterval)
}
