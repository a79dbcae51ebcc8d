package config

import (
	"os"
	"path/filepath"
	"testing"

	"thumbgrab/internal/media"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ImageHost != "img.youtube.com" {
		t.Errorf("default image host = %q, want img.youtube.com", cfg.ImageHost)
	}
	if cfg.Quality != "max" {
		t.Errorf("default quality = %q, want max", cfg.Quality)
	}
	if !cfg.History {
		t.Error("default history should be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid quality", func(c *Config) { c.Quality = "4k" }, true},
		{"empty image host", func(c *Config) { c.ImageHost = "" }, true},
		{"image host with path", func(c *Config) { c.ImageHost = "img.youtube.com/vi" }, true},
		{"http watch base", func(c *Config) { c.WatchBase = "http://www.youtube.com/watch" }, true},
		{"empty download dir", func(c *Config) { c.DownloadDir = "" }, true},
		{"valid sd", func(c *Config) { c.Quality = "sd" }, false},
		{"valid tier name", func(c *Config) { c.Quality = "hqdefault" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "thumbgrab")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `
quality = "hq"
download_dir = "/tmp/thumbs"
history = false
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Quality != "hq" {
		t.Errorf("quality = %q, want hq", cfg.Quality)
	}
	if cfg.DownloadDir != "/tmp/thumbs" {
		t.Errorf("download_dir = %q, want /tmp/thumbs", cfg.DownloadDir)
	}
	if cfg.History {
		t.Error("history should be false")
	}
	// Unset keys keep their defaults
	if cfg.ImageHost != "img.youtube.com" {
		t.Errorf("image_host = %q, want default", cfg.ImageHost)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Quality != "max" {
		t.Errorf("missing file should return defaults, got quality = %q", cfg.Quality)
	}
}

func TestParsedQuality(t *testing.T) {
	cfg := Default()
	cfg.Quality = "mq"
	if got := cfg.ParsedQuality(); got != media.Medium {
		t.Errorf("ParsedQuality() = %v, want Medium", got)
	}
}

func TestWatchHost(t *testing.T) {
	cfg := Default()
	if got := cfg.WatchHost(); got != "www.youtube.com" {
		t.Errorf("WatchHost() = %q, want www.youtube.com", got)
	}
}

func TestExpandDownloadDir(t *testing.T) {
	cfg := Default()
	cfg.DownloadDir = "/tmp/test-thumbs"

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		t.Fatalf("ExpandDownloadDir() error: %v", err)
	}
	if dir != "/tmp/test-thumbs" {
		t.Errorf("got %q, want /tmp/test-thumbs", dir)
	}
}
