// Package media defines shared types for the thumbgrab application.
package media

import (
	"fmt"
	"strings"
	"time"
)

// Quality represents one of YouTube's fixed thumbnail resolution tiers,
// ordered from highest to lowest resolution.
type Quality int

const (
	Maxres Quality = iota
	Standard
	High
	Medium
)

// Qualities returns all tiers in display order (highest first).
func Qualities() []Quality {
	return []Quality{Maxres, Standard, High, Medium}
}

func (q Quality) String() string {
	switch q {
	case Maxres:
		return "max"
	case Standard:
		return "sd"
	case High:
		return "hq"
	case Medium:
		return "mq"
	default:
		return "unknown"
	}
}

// TierName returns the path segment YouTube uses for this tier,
// e.g. "maxresdefault" for https://img.youtube.com/vi/{id}/maxresdefault.jpg.
func (q Quality) TierName() string {
	switch q {
	case Maxres:
		return "maxresdefault"
	case Standard:
		return "sddefault"
	case High:
		return "hqdefault"
	case Medium:
		return "mqdefault"
	default:
		return "hqdefault"
	}
}

// Dimensions returns the nominal pixel size of this tier.
func (q Quality) Dimensions() (width, height int) {
	switch q {
	case Maxres:
		return 1280, 720
	case Standard:
		return 640, 480
	case High:
		return 480, 360
	case Medium:
		return 320, 180
	default:
		return 0, 0
	}
}

// ParseQuality converts a user-supplied quality name into a Quality.
// Both the short names (max, sd, hq, mq) and the full tier names are accepted.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maxres", "maxresdefault":
		return Maxres, nil
	case "sd", "standard", "sddefault":
		return Standard, nil
	case "hq", "high", "hqdefault":
		return High, nil
	case "mq", "medium", "mqdefault":
		return Medium, nil
	default:
		return High, fmt.Errorf("unsupported quality %q (valid: max, sd, hq, mq)", s)
	}
}

// Thumbnail pairs a video ID and quality tier with an image URL that has
// been confirmed to exist. Code outside the provider must never construct
// one from an unverified URL.
type Thumbnail struct {
	VideoID string  // 11-character video identifier
	Quality Quality // Tier the URL was confirmed at (may differ from the requested tier after fallback)
	URL     string  // Confirmed image URL
	Title   string  // Video title, empty if the lookup failed
}

// HistoryEntry records one completed resolution or download.
type HistoryEntry struct {
	VideoID   string
	Title     string
	Quality   string // Tier name, e.g. "maxresdefault"
	URL       string
	SavedPath string // Local file path, empty if only resolved
	CreatedAt time.Time
}
