// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"thumbgrab/internal/media"
)

// Config holds all application configuration.
type Config struct {
	ImageHost   string `toml:"image_host"`   // Host serving static thumbnails
	WatchBase   string `toml:"watch_base"`   // Base URL for watch pages and deep links
	Quality     string `toml:"quality"`      // Default tier: max | sd | hq | mq
	DownloadDir string `toml:"download_dir"` // Where downloaded thumbnails land
	History     bool   `toml:"history"`      // Record resolutions/downloads
	Debug       bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ImageHost:   "img.youtube.com",
		WatchBase:   "https://www.youtube.com/watch",
		Quality:     "max",
		DownloadDir: "~/Pictures/thumbgrab",
		History:     true,
		Debug:       false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "thumbgrab"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "thumbgrab"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if _, err := media.ParseQuality(c.Quality); err != nil {
		return err
	}

	if c.ImageHost == "" || strings.Contains(c.ImageHost, "/") {
		return fmt.Errorf("image_host must be a bare hostname, got %q", c.ImageHost)
	}

	u, err := url.Parse(c.WatchBase)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("watch_base must be an HTTPS URL, got %q", c.WatchBase)
	}

	if c.DownloadDir == "" {
		return fmt.Errorf("download_dir cannot be empty")
	}

	return nil
}

// ParsedQuality returns the configured default quality tier.
func (c *Config) ParsedQuality() media.Quality {
	q, err := media.ParseQuality(c.Quality)
	if err != nil {
		return media.Maxres
	}
	return q
}

// WatchHost returns the host of the watch-page base URL.
func (c *Config) WatchHost() string {
	u, err := url.Parse(c.WatchBase)
	if err != nil {
		return "www.youtube.com"
	}
	return u.Host
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// HistoryPath returns the path to the history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "thumbgrab", "history.db"), nil
}
