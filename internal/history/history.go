// Package history records completed resolutions and downloads in a local
// SQLite database so past thumbnails can be listed and re-fetched.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"thumbgrab/internal/config"
	"thumbgrab/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS thumbnails (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id   TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	quality    TEXT NOT NULL,
	url        TEXT NOT NULL,
	saved_path TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_thumbnails_video ON thumbnails(video_id);
`

// Store is a handle to the history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the history database at its XDG data path.
func OpenDefault() (*Store, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records one completed resolution or download.
func (s *Store) Add(e media.HistoryEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO thumbnails (video_id, title, quality, url, saved_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.VideoID, e.Title, e.Quality, e.URL, e.SavedPath, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]media.HistoryEntry, error) {
	rows, err := s.db.Query(
		`SELECT video_id, title, quality, url, saved_path, created_at
		 FROM thumbnails ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	defer rows.Close()

	var entries []media.HistoryEntry
	for rows.Next() {
		var e media.HistoryEntry
		if err := rows.Scan(&e.VideoID, &e.Title, &e.Quality, &e.URL, &e.SavedPath, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Clear removes all history entries.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM thumbnails`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// FormatForDisplay creates one display line per entry.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	var items []string
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = e.VideoID
		}
		display := fmt.Sprintf("%s  %s [%s]", e.CreatedAt.Format("2006-01-02 15:04"), title, e.Quality)
		if e.SavedPath != "" {
			display += " -> " + e.SavedPath
		}
		items = append(items, display)
	}
	return items
}
