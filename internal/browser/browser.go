// Package browser opens URLs in the system browser. It is the recovery
// path when a binary transfer fails: the user gets the raw resource in a
// new view and can save it manually. All invocations use exec.Command
// with explicit argument slices.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"thumbgrab/internal/httputil"
)

// Open launches the platform's URL opener for the given HTTPS URL.
func Open(rawURL string) error {
	if err := httputil.ValidateURL(rawURL); err != nil {
		return fmt.Errorf("refusing to open: %w", err)
	}

	name, args := opener(rawURL)

	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", name, err)
	}

	if err := exec.Command(path, args...).Start(); err != nil {
		return fmt.Errorf("launching %s: %w", name, err)
	}
	return nil
}

// opener returns the platform launcher command and its arguments.
func opener(rawURL string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}
