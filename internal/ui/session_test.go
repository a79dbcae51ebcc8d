package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"thumbgrab/internal/config"
	"thumbgrab/internal/media"
	"thumbgrab/internal/provider"
)

func newTestModel() sessionModel {
	return sessionModel{
		cfg:     config.Default(),
		quality: media.Maxres,
	}
}

func TestStaleResolutionIsDiscarded(t *testing.T) {
	m := newTestModel()
	m.videoID = "dQw4w9WgXcQ"
	m.seq = 2 // two requests issued; only the latest may update state
	m.loading = true

	newest := &media.Thumbnail{VideoID: "dQw4w9WgXcQ", Quality: media.Standard, URL: "https://img.youtube.com/vi/dQw4w9WgXcQ/sddefault.jpg"}
	stale := &media.Thumbnail{VideoID: "dQw4w9WgXcQ", Quality: media.Maxres, URL: "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"}

	// The newer request completes first.
	model, _ := m.Update(resolvedMsg{seq: 2, thumb: newest})
	m2 := model.(sessionModel)
	if m2.thumb == nil || m2.thumb.URL != newest.URL {
		t.Fatalf("fresh completion not applied: %+v", m2.thumb)
	}

	// The superseded request's completion arrives late and must not win.
	model, _ = m2.Update(resolvedMsg{seq: 1, thumb: stale})
	m3 := model.(sessionModel)
	if m3.thumb.URL != newest.URL {
		t.Errorf("stale completion overwrote state: %q", m3.thumb.URL)
	}
}

func TestStaleErrorIsDiscarded(t *testing.T) {
	m := newTestModel()
	m.seq = 3
	confirmed := &media.Thumbnail{VideoID: "dQw4w9WgXcQ", Quality: media.High, URL: "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}
	m.thumb = confirmed

	model, _ := m.Update(resolvedMsg{seq: 2, err: errors.New("boom")})
	m2 := model.(sessionModel)
	if m2.thumb != confirmed {
		t.Error("stale error cleared a newer confirmed thumbnail")
	}
	if m2.inputErr != "" {
		t.Errorf("stale error surfaced: %q", m2.inputErr)
	}
}

func TestResolutionFailureClearsThumbnail(t *testing.T) {
	m := newTestModel()
	m.seq = 1
	m.loading = true
	m.thumb = &media.Thumbnail{VideoID: "dQw4w9WgXcQ", Quality: media.Maxres, URL: "https://x/max.jpg"}

	err := &provider.UnavailableError{VideoID: "dQw4w9WgXcQ", Quality: media.Medium}
	model, _ := m.Update(resolvedMsg{seq: 1, err: err})
	m2 := model.(sessionModel)

	if m2.thumb != nil {
		t.Error("failed resolution left a thumbnail set")
	}
	if m2.loading {
		t.Error("loading flag not cleared")
	}
	if m2.inputErr == "" {
		t.Error("expected an inline error message")
	}
}

func TestDownloadBusyFlagClearsOnBothPaths(t *testing.T) {
	for _, msg := range []savedMsg{
		{path: "/tmp/thumbnail-maxresdefault-1.jpg"},
		{err: errors.New("network down")},
		{opened: true, err: errors.New("network down")},
	} {
		m := newTestModel()
		m.downloading = true

		model, _ := m.Update(msg)
		m2 := model.(sessionModel)
		if m2.downloading {
			t.Errorf("downloading flag not cleared for %+v", msg)
		}
		if m2.status == "" {
			t.Errorf("expected a status message for %+v", msg)
		}
	}
}

func TestSubmitInvalidInput(t *testing.T) {
	m := newTestModel()
	m.thumb = &media.Thumbnail{VideoID: "dQw4w9WgXcQ", Quality: media.Maxres, URL: "https://x/max.jpg"}

	m2, cmd := m.submit("not a url")
	if cmd != nil {
		t.Error("invalid input must not issue a resolution")
	}
	if m2.inputErr == "" {
		t.Error("expected inline error for invalid input")
	}
	if m2.thumb != nil {
		t.Error("extraction failure must clear the previous thumbnail")
	}
}

func TestSubmitIssuesFreshToken(t *testing.T) {
	m := newTestModel()
	m.seq = 4

	m2, cmd := m.submit("https://youtu.be/dQw4w9WgXcQ")
	if cmd == nil {
		t.Fatal("expected a resolve command")
	}
	if m2.seq != 5 {
		t.Errorf("seq = %d, want 5", m2.seq)
	}
	if !m2.loading {
		t.Error("loading flag not set")
	}
	if m2.videoID != "dQw4w9WgXcQ" {
		t.Errorf("videoID = %q", m2.videoID)
	}
	if m2.thumb != nil {
		t.Error("previous thumbnail must be cleared while resolving")
	}
}

func TestQualitySwitchReResolves(t *testing.T) {
	m := newTestModel()
	m.videoID = "dQw4w9WgXcQ"
	m.seq = 1
	m.thumb = &media.Thumbnail{VideoID: "dQw4w9WgXcQ", Quality: media.Maxres, URL: "https://x/max.jpg"}

	model, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyTab})
	m2 := model.(sessionModel)

	if cmd == nil {
		t.Fatal("quality switch with a known video must issue a resolution")
	}
	if m2.quality != media.Standard {
		t.Errorf("quality = %v, want Standard", m2.quality)
	}
	if m2.seq != 2 {
		t.Errorf("seq = %d, want 2", m2.seq)
	}
	if m2.thumb != nil {
		t.Error("quality switch must clear the previous thumbnail")
	}
}

func TestQualitySwitchWithoutVideo(t *testing.T) {
	m := newTestModel()

	model, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyTab})
	m2 := model.(sessionModel)

	if cmd != nil {
		t.Error("no resolution should be issued without a video ID")
	}
	if m2.quality != media.Standard {
		t.Errorf("quality = %v, want Standard", m2.quality)
	}
}

func TestCycleQuality(t *testing.T) {
	if got := cycleQuality(media.Medium, true); got != media.Maxres {
		t.Errorf("forward from Medium = %v, want wrap to Maxres", got)
	}
	if got := cycleQuality(media.Maxres, false); got != media.Medium {
		t.Errorf("backward from Maxres = %v, want wrap to Medium", got)
	}
}
