// Package ui implements the interactive resolution session: a URL field,
// a quality selector, a preview of the confirmed thumbnail, and download,
// copy-link and open actions.
package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"thumbgrab/internal/browser"
	"thumbgrab/internal/config"
	"thumbgrab/internal/download"
	"thumbgrab/internal/extract"
	"thumbgrab/internal/history"
	"thumbgrab/internal/media"
	"thumbgrab/internal/provider"
	"thumbgrab/internal/share"
)

// resolveTimeout bounds one resolution attempt including the title lookup.
const resolveTimeout = 20 * time.Second

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
)

// resolvedMsg is the completion of one resolution request. seq carries the
// request token back so completions of superseded requests are discarded.
type resolvedMsg struct {
	seq   int
	thumb *media.Thumbnail
	title string
	err   error
}

// savedMsg is the completion of one download. opened is set when the
// binary transfer failed and the resource was opened in the browser
// instead.
type savedMsg struct {
	path   string
	opened bool
	err    error
}

type copiedMsg struct {
	link string
	err  error
}

type openedMsg struct {
	err error
}

type sessionModel struct {
	cfg    *config.Config
	yt     *provider.YouTube
	client *http.Client
	store  *history.Store // nil when history is disabled

	input   textinput.Model
	videoID string
	quality media.Quality
	thumb   *media.Thumbnail // confirmed URLs only
	title   string

	// seq is a monotonically increasing request token. Every resolve
	// command is issued with the current value; a resolvedMsg whose seq
	// is stale must not touch visible state.
	seq         int
	loading     bool
	downloading bool

	inputErr string
	status   string

	width  int
	height int

	// initialCmd carries the resolution issued for a URL passed on the
	// command line, fired from Init.
	initialCmd tea.Cmd
}

// Run starts the interactive session. initialURL, when non-empty, is
// resolved immediately (deep links land here too).
func Run(cfg *config.Config, client *http.Client, yt *provider.YouTube, store *history.Store, initialURL string) error {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "paste a video URL"
	input.CharLimit = 512
	input.Width = 70
	input.Focus()

	m := sessionModel{
		cfg:     cfg,
		yt:      yt,
		client:  client,
		store:   store,
		input:   input,
		quality: cfg.ParsedQuality(),
	}
	if initialURL != "" {
		m.input.SetValue(initialURL)
		var cmd tea.Cmd
		m, cmd = m.submit(initialURL)
		m.initialCmd = cmd
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m sessionModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialCmd)
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resolvedMsg:
		if msg.seq != m.seq {
			// A newer request superseded this one.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.thumb = nil
			m.title = ""
			var unavailable *provider.UnavailableError
			if errors.As(msg.err, &unavailable) {
				m.inputErr = fmt.Sprintf("no %s thumbnail for this video", unavailable.Quality)
			} else {
				m.inputErr = msg.err.Error()
			}
			return m, nil
		}
		m.thumb = msg.thumb
		m.title = msg.title
		m.quality = msg.thumb.Quality // reflects the top-tier fallback
		m.inputErr = ""
		return m, nil

	case savedMsg:
		// The busy flag clears on every exit path of the transfer.
		m.downloading = false
		switch {
		case msg.err == nil:
			m.status = "saved " + msg.path
		case msg.opened:
			m.status = "download failed, opened in browser instead"
		default:
			m.status = "download failed: " + msg.err.Error()
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "clipboard unavailable: " + msg.link
		} else {
			m.status = "link copied: " + msg.link
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.status = "open failed: " + msg.err.Error()
		} else {
			m.status = "opened in browser"
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m.updateKeys(keyMsg)
}

// updateKeys handles key input. The URL field keeps focus the whole
// session, so actions live on ctrl chords and tab.
func (m sessionModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		model, cmd := m.submit(m.input.Value())
		return model, cmd

	case "tab", "shift+tab":
		m.status = ""
		m.quality = cycleQuality(m.quality, msg.String() == "tab")
		if m.videoID != "" {
			return m.resolveCurrent()
		}
		return m, nil

	case "ctrl+d":
		if m.thumb == nil || m.downloading {
			return m, nil
		}
		m.downloading = true
		m.status = ""
		return m, downloadCmd(m.client, m.thumb, m.title, m.cfg, m.store)

	case "ctrl+y":
		if m.videoID == "" {
			return m, nil
		}
		return m, copyCmd(share.Encode(m.cfg.WatchBase, m.videoID))

	case "ctrl+o":
		if m.thumb == nil {
			return m, nil
		}
		return m, openCmd(m.thumb.URL)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit extracts an identifier from raw input and starts a resolution.
// Extraction failure is inline and terminal for this attempt; the field
// stays editable.
func (m sessionModel) submit(raw string) (sessionModel, tea.Cmd) {
	id, err := extract.VideoID(raw)
	if err != nil {
		m.inputErr = "no video found in that URL"
		m.thumb = nil
		m.title = ""
		m.videoID = ""
		return m, nil
	}

	m.videoID = id
	m.inputErr = ""
	m.status = ""
	return m.resolveCurrent()
}

// resolveCurrent issues a resolution for the current (id, quality) under a
// fresh request token. Any in-flight resolution keeps running but its
// completion will be discarded as stale.
func (m sessionModel) resolveCurrent() (sessionModel, tea.Cmd) {
	m.thumb = nil
	m.loading = true
	m.seq++
	return m, resolveCmd(m.yt, m.videoID, m.quality, m.seq)
}

func resolveCmd(yt *provider.YouTube, id string, q media.Quality, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		thumb, err := yt.Resolve(ctx, id, q)
		if err != nil {
			return resolvedMsg{seq: seq, err: err}
		}
		title, err := yt.Title(ctx, id)
		if err != nil {
			// Title is decoration; the confirmed thumbnail stands alone.
			title = ""
		}
		return resolvedMsg{seq: seq, thumb: thumb, title: title}
	}
}

func downloadCmd(client *http.Client, thumb *media.Thumbnail, title string, cfg *config.Config, store *history.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		dir, err := cfg.ExpandDownloadDir()
		if err != nil {
			return savedMsg{err: err}
		}

		path, err := download.Save(ctx, client, thumb, dir)
		if err != nil {
			// Degrade to the browser so the user can still save manually.
			if openErr := browser.Open(thumb.URL); openErr == nil {
				return savedMsg{opened: true, err: err}
			}
			return savedMsg{err: err}
		}

		if store != nil {
			_ = store.Add(media.HistoryEntry{
				VideoID:   thumb.VideoID,
				Title:     title,
				Quality:   thumb.Quality.TierName(),
				URL:       thumb.URL,
				SavedPath: path,
			})
		}
		return savedMsg{path: path}
	}
}

func copyCmd(link string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{link: link, err: share.Copy(link)}
	}
}

func openCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{err: browser.Open(url)}
	}
}

func cycleQuality(q media.Quality, forward bool) media.Quality {
	tiers := media.Qualities()
	pos := 0
	for i, t := range tiers {
		if t == q {
			pos = i
			break
		}
	}
	if forward {
		pos = (pos + 1) % len(tiers)
	} else {
		pos = (pos - 1 + len(tiers)) % len(tiers)
	}
	return tiers[pos]
}

func (m sessionModel) View() string {
	if m.width <= 0 {
		m.width = 80
	}

	header := titleStyle.Render("thumbgrab") + "\n" +
		mutedStyle.Render("enter: resolve | tab: quality | ctrl+d: download | ctrl+y: copy link | ctrl+o: open | esc: quit")

	inputPanel := panelStyle.Width(minInt(m.width-2, 76)).Render(m.input.View())

	var body []string
	body = append(body, header, inputPanel)

	if m.inputErr != "" {
		body = append(body, errorStyle.Render(m.inputErr))
	}

	body = append(body, m.renderQualityLine())
	body = append(body, m.renderPreview())

	if m.status != "" {
		style := okStyle
		if strings.Contains(m.status, "failed") || strings.Contains(m.status, "unavailable") {
			style = errorStyle
		}
		body = append(body, style.Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, body...)
}

func (m sessionModel) renderQualityLine() string {
	parts := make([]string, 0, 4)
	for _, q := range media.Qualities() {
		w, h := q.Dimensions()
		label := fmt.Sprintf(" %s %dx%d ", q, w, h)
		if q == m.quality {
			parts = append(parts, selStyle.Render(label))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return "quality: " + strings.Join(parts, " ")
}

func (m sessionModel) renderPreview() string {
	width := minInt(m.width-2, 76)

	switch {
	case m.loading:
		return panelStyle.Width(width).Render(mutedStyle.Render("resolving..."))
	case m.downloading:
		return panelStyle.Width(width).Render(mutedStyle.Render("downloading..."))
	case m.thumb == nil:
		return panelStyle.Width(width).Render(mutedStyle.Render("no thumbnail resolved yet"))
	}

	lines := []string{}
	if m.title != "" {
		lines = append(lines, titleStyle.Render(m.title))
	}
	w, h := m.thumb.Quality.Dimensions()
	lines = append(lines,
		fmt.Sprintf("video:   %s", m.thumb.VideoID),
		fmt.Sprintf("tier:    %s (%dx%d)", m.thumb.Quality.TierName(), w, h),
		fmt.Sprintf("url:     %s", m.thumb.URL),
		okStyle.Render("confirmed"),
	)
	return panelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
