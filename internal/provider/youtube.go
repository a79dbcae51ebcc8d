// Package provider resolves (video ID, quality) pairs against YouTube's
// static thumbnail endpoint and looks up video metadata from watch pages.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"thumbgrab/internal/httputil"
	"thumbgrab/internal/media"
)

// UnavailableError reports that a video has no thumbnail at the requested
// tier. Only the top tier triggers an automatic fallback; any other tier
// surfaces this error directly.
type UnavailableError struct {
	VideoID string
	Quality media.Quality
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("no %s thumbnail for video %s", e.Quality.TierName(), e.VideoID)
}

// errTierMissing distinguishes "resource does not exist" from transport
// failures inside probe.
var errTierMissing = errors.New("thumbnail tier missing")

// YouTube resolves thumbnails against YouTube's image host.
type YouTube struct {
	imageHost string // e.g. "img.youtube.com"
	pageHost  string // e.g. "www.youtube.com"
	client    *http.Client
}

// NewYouTube creates a provider for the given image and watch-page hosts.
func NewYouTube(imageHost, pageHost string, client *http.Client) *YouTube {
	return &YouTube{
		imageHost: imageHost,
		pageHost:  pageHost,
		client:    client,
	}
}

// ThumbnailURL builds the candidate image URL for a video and tier.
// Tier names map 1:1 to fixed paths, so no network call is involved.
func (y *YouTube) ThumbnailURL(id string, q media.Quality) string {
	return fmt.Sprintf("https://%s/vi/%s/%s.jpg", y.imageHost, id, q.TierName())
}

// Resolve confirms that a thumbnail exists at the requested tier and
// returns it. If the top tier is missing, it retries once against the
// second tier and surfaces that result unconditionally; a missing lower
// tier is a definite *UnavailableError with no further fallback.
func (y *YouTube) Resolve(ctx context.Context, id string, q media.Quality) (*media.Thumbnail, error) {
	candidate := y.ThumbnailURL(id, q)

	err := y.probe(ctx, candidate)
	if err == nil {
		return &media.Thumbnail{VideoID: id, Quality: q, URL: candidate}, nil
	}

	if errors.Is(err, errTierMissing) {
		if q == media.Maxres {
			return y.Resolve(ctx, id, media.Standard)
		}
		return nil, &UnavailableError{VideoID: id, Quality: q}
	}

	return nil, err
}

// probe checks existence with a HEAD request. A non-200 status or a
// non-image content type means the tier does not exist for this video;
// transport errors are reported as-is.
func (y *YouTube) probe(ctx context.Context, url string) error {
	resp, err := httputil.Head(ctx, y.client, url)
	if err != nil {
		return fmt.Errorf("probing %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errTierMissing
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return errTierMissing
	}
	return nil
}

// Title fetches the watch page and extracts the video title from its
// og:title meta tag. Callers treat failure as non-fatal; the thumbnail
// pipeline works without a title.
func (y *YouTube) Title(ctx context.Context, id string) (string, error) {
	pageURL := fmt.Sprintf("https://%s/watch?v=%s", y.pageHost, id)

	resp, err := httputil.Get(ctx, y.client, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetching watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing watch page: %w", err)
	}

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		return strings.TrimSpace(title), nil
	}

	// Fall back to the document title, trimming the site suffix.
	title := strings.TrimSpace(doc.Find("title").Text())
	title = strings.TrimSuffix(title, " - YouTube")
	if title == "" {
		return "", fmt.Errorf("no title found for video %s", id)
	}
	return title, nil
}
