// Package download fetches a confirmed thumbnail as binary data and writes
// it to local storage. Output paths are validated against directory
// traversal before anything touches the filesystem.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"thumbgrab/internal/httputil"
	"thumbgrab/internal/media"
)

// maxImageSize bounds a single thumbnail transfer. The largest tier is a
// 1280x720 JPEG, so anything near this limit is not a thumbnail.
const maxImageSize = 20 * 1024 * 1024

// Filename returns the output name for a thumbnail: the quality tier plus
// a uniqueness token so repeated downloads never collide.
func Filename(q media.Quality) string {
	return fmt.Sprintf("thumbnail-%s-%d.jpg", q.TierName(), time.Now().UnixNano())
}

// Save fetches the thumbnail body and writes it to dir, returning the
// final path. Partial files are removed on any failure.
func Save(ctx context.Context, client *http.Client, thumb *media.Thumbnail, dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(absDir, Filename(thumb.Quality))
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	resp, err := httputil.Get(ctx, client, thumb.URL)
	if err != nil {
		return "", fmt.Errorf("fetching thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("thumbnail fetch returned status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("unexpected content type %q", ct)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}

	if _, err := io.Copy(out, io.LimitReader(resp.Body, maxImageSize)); err != nil {
		out.Close()
		os.Remove(outputPath)
		return "", fmt.Errorf("writing thumbnail: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("closing output file: %w", err)
	}

	return outputPath, nil
}
