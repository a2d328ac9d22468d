// ABOUTME: Configuration for store backend selection and rendering options.
// ABOUTME: JSON file under the XDG config dir, loaded with defaults when absent.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// BackendLocal stores scraps in a badger database on this machine.
	BackendLocal = "local"
	// BackendPostgres talks to a hosted PostgreSQL store.
	BackendPostgres = "postgres"
)

// Config holds the scraps CLI configuration.
type Config struct {
	// Backend selects the store adapter: "local" (default) or "postgres".
	Backend string `json:"backend"`

	// PostgresDSN is required when Backend is "postgres".
	PostgresDSN string `json:"postgres_dsn,omitempty"`

	// DataDir overrides the local store's data directory.
	DataDir string `json:"data_dir,omitempty"`

	// WordWrap is the rendering width for markdown content.
	WordWrap int `json:"word_wrap"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendLocal,
		WordWrap: 80,
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "scraps")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// DefaultDataDir returns the local store directory under XDG data home.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "scraps")
}

// LoadConfig loads configuration from disk, returns defaults if not found.
func LoadConfig() (*Config, error) {
	return loadFrom(ConfigPath())
}

func loadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendLocal
	}
	if cfg.WordWrap <= 0 {
		cfg.WordWrap = 80
	}

	return cfg, nil
}

// SaveConfig writes configuration to disk.
func SaveConfig(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}

// ResolvedDataDir returns DataDir or the XDG default.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DefaultDataDir()
}
