package httputil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", false},
		{"HTTP rejected", "http://img.youtube.com/vi/x/hqdefault.jpg", true},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"empty string", "", true},
		{"no host", "https://", true},
		{"valid with port", "https://example.com:8443/vi/x/sddefault.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "thumbnail-maxresdefault-123.jpg", "thumbnail-maxresdefault-123.jpg"},
		{"directory stripped", "/etc/passwd", "passwd"},
		{"traversal", "..", "untitled"},
		{"colons replaced", "a:b", "a_b"},
		{"empty", "", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeDownloadPath(t *testing.T) {
	dir := t.TempDir()

	path, err := SafeDownloadPath(dir, "thumbnail-sddefault-1.jpg")
	if err != nil {
		t.Fatalf("SafeDownloadPath() error: %v", err)
	}
	if !strings.HasPrefix(path, dir+string(filepath.Separator)) {
		t.Errorf("path %q not inside %q", path, dir)
	}

	// Traversal attempts are sanitized into the directory, never outside it.
	path, err = SafeDownloadPath(dir, "../../escape.jpg")
	if err != nil {
		t.Fatalf("SafeDownloadPath() error: %v", err)
	}
	if !strings.HasPrefix(path, dir+string(filepath.Separator)) {
		t.Errorf("traversal produced path %q outside %q", path, dir)
	}
}
