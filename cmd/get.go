package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"thumbgrab/internal/browser"
	"thumbgrab/internal/download"
	"thumbgrab/internal/extract"
	"thumbgrab/internal/media"
	"thumbgrab/internal/provider"
)

// opTimeout bounds one non-interactive resolve or download.
const opTimeout = 30 * time.Second

var flagOpen bool

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Download a thumbnail without the interactive session",
	Args:  cobra.ExactArgs(1),
	RunE:  getRun,
}

func init() {
	getCmd.Flags().BoolVar(&flagOpen, "open", false, "Open the resolved thumbnail in the browser instead of downloading")
}

func getRun(cmd *cobra.Command, args []string) error {
	thumb, title, err := resolve(args[0])
	if err != nil {
		return err
	}

	if flagOpen {
		return browser.Open(thumb.URL)
	}

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		return fmt.Errorf("resolving download dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	client := httpClient()
	path, err := download.Save(ctx, client, thumb, dir)
	if err != nil {
		// Fall back to opening the confirmed URL in the browser.
		debugf("download failed: %v", err)
		if openErr := browser.Open(thumb.URL); openErr == nil {
			fmt.Fprintln(os.Stderr, "Download failed; opened the thumbnail in your browser instead.")
			return nil
		}
		return fmt.Errorf("downloading thumbnail: %w", err)
	}

	recordHistory(media.HistoryEntry{
		VideoID:   thumb.VideoID,
		Title:     title,
		Quality:   thumb.Quality.TierName(),
		URL:       thumb.URL,
		SavedPath: path,
	})

	fmt.Fprintf(os.Stderr, "Saved: %s\n", path)
	return nil
}

// resolve runs the extract -> resolve -> title pipeline shared by the
// one-shot commands.
func resolve(url string) (*media.Thumbnail, string, error) {
	id, err := extract.VideoID(url)
	if err != nil {
		return nil, "", fmt.Errorf("no video found in %q", url)
	}
	debugf("video ID: %s", id)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	client := httpClient()
	yt := newProvider(client)

	thumb, err := yt.Resolve(ctx, id, cfg.ParsedQuality())
	if err != nil {
		var unavailable *provider.UnavailableError
		if errors.As(err, &unavailable) {
			return nil, "", fmt.Errorf("video %s has no %s thumbnail", unavailable.VideoID, unavailable.Quality.TierName())
		}
		return nil, "", fmt.Errorf("resolving thumbnail: %w", err)
	}
	debugf("confirmed: %s", thumb.URL)

	title, err := yt.Title(ctx, id)
	if err != nil {
		debugf("title lookup failed: %v", err)
	}
	return thumb, title, nil
}

// resolveOnce prints a resolved thumbnail for scripting use.
func resolveOnce(url string) error {
	thumb, title, err := resolve(url)
	if err != nil {
		return err
	}

	recordHistory(media.HistoryEntry{
		VideoID: thumb.VideoID,
		Title:   title,
		Quality: thumb.Quality.TierName(),
		URL:     thumb.URL,
	})

	if flagJSON {
		out := map[string]interface{}{
			"video_id": thumb.VideoID,
			"title":    title,
			"quality":  thumb.Quality.TierName(),
			"url":      thumb.URL,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(thumb.URL)
	return nil
}
