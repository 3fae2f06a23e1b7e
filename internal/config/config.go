// Package config loads and saves the finflow client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all finflow client configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ServerConfig holds backend connection settings.
type ServerConfig struct {
	BaseURL   string `toml:"base_url"`
	SocketURL string `toml:"socket_url,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultGroup string `toml:"default_group,omitempty"`
	Currency     string `toml:"currency"`
	ContactsFile string `toml:"contacts_file,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8000",
		},
		General: GeneralConfig{
			Currency: "INR",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finflow")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory for the device store.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "finflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "finflow")
}

// StorePath returns the full path to the sqlite device store.
func StorePath() string {
	return filepath.Join(DataDir(), "finflow.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
// FINFLOW_SERVER overrides the configured base URL.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return applyEnv(cfg), fmt.Errorf("parsing config: %w", err)
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if server := os.Getenv("FINFLOW_SERVER"); server != "" {
		cfg.Server.BaseURL = server
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// SocketURL returns the websocket endpoint, derived from the base URL when
// not configured explicitly.
func (c Config) SocketURL() string {
	if c.Server.SocketURL != "" {
		return c.Server.SocketURL
	}
	u := c.Server.BaseURL
	u = strings.Replace(u, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return strings.TrimRight(u, "/") + "/socket"
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
