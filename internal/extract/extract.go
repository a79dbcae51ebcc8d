// Package extract parses user-supplied YouTube URLs into video identifiers.
package extract

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrNoVideoID signals that no valid video identifier could be found in the
// input. Malformed or empty input is a normal "not found", never a panic.
var ErrNoVideoID = errors.New("no video ID found")

var (
	// idPattern captures the candidate segment following any of the known
	// URL forms: watch pages (?v=), short links (youtu.be/), embed paths
	// (/embed/, /v/, /vi/, /shorts/) and legacy user paths (/u/N/).
	// The captured segment is validated separately so that a wrong-length
	// candidate counts as "not found" rather than a partial match.
	idPattern = regexp.MustCompile(`(?:youtu\.be/|youtube(?:-nocookie)?\.com/(?:embed/|shorts/|live/|v/|vi/|u/\w/|watch\?(?:[^#&?]*&)*v=))([^#&?/\s]*)`)

	// idAlphabet is the exact shape of a YouTube video identifier.
	idAlphabet = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// VideoID extracts the 11-character video identifier from an arbitrary
// string. It accepts watch, short-link, embed, shorts and legacy user-path
// URLs as well as bare "v=" query parameters.
func VideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoVideoID
	}

	if m := idPattern.FindStringSubmatch(raw); len(m) == 2 && ValidID(m[1]) {
		return m[1], nil
	}

	// Fall back to a plain v= query parameter for URL shapes the pattern
	// does not enumerate (e.g. attribution links).
	if u, err := url.Parse(raw); err == nil {
		if v := u.Query().Get("v"); ValidID(v) {
			return v, nil
		}
	}

	return "", ErrNoVideoID
}

// ValidID reports whether id is exactly 11 characters from the video
// identifier alphabet. The share decoder applies the same rule so both
// directions stay consistent.
func ValidID(id string) bool {
	return idAlphabet.MatchString(id)
}
