// Package share encodes video identifiers as canonical deep links and
// decodes them back, so a link pasted into the tool reconstructs the same
// session it was copied from.
package share

import (
	"net/url"
	"strings"

	"github.com/atotto/clipboard"

	"thumbgrab/internal/extract"
)

// queryKey is the fixed query parameter carrying the identifier.
const queryKey = "v"

// Encode builds the canonical deep link for a video identifier.
// base is the watch-page base URL, e.g. "https://www.youtube.com/watch".
func Encode(base, id string) string {
	return base + "?" + queryKey + "=" + url.QueryEscape(id)
}

// Decode extracts a video identifier from a deep link or bare query
// string. A missing key is a normal "none" result, not an error, and a
// present value is accepted only if it passes the same alphabet/length
// rule the extractor applies.
func Decode(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	var values url.Values
	if u, err := url.Parse(raw); err == nil && u.RawQuery != "" {
		values = u.Query()
	} else if v, err := url.ParseQuery(raw); err == nil {
		values = v
	} else {
		return "", false
	}

	id := values.Get(queryKey)
	if !extract.ValidID(id) {
		return "", false
	}
	return id, true
}

// Copy writes a link to the system clipboard. Failure is reported to the
// caller as a transient notice; it never blocks the session.
func Copy(link string) error {
	return clipboard.WriteAll(link)
}
