package install

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/lanpobre/rghstore/internal/exception"
	"github.com/lanpobre/rghstore/internal/logger"
)

// DefaultMaxRedirects redirect hops followed before giving up
const DefaultMaxRedirects = 5

// Downloader fetches a url to a local file
type Downloader interface {
	Download(ctx context.Context, rawURL, dest string) error
}

// HTTPDownloader implements Downloader, following redirects itself so the
// hop limit and relative locations are under its control
type HTTPDownloader struct {
	client       *http.Client
	maxRedirects int
	log          logger.Logger
}

// NewHTTPDownloader returns a new instance of HTTPDownloader
func NewHTTPDownloader(timeout time.Duration, maxRedirects int) *HTTPDownloader {
	if maxRedirects < 0 {
		maxRedirects = DefaultMaxRedirects
	}

	return &HTTPDownloader{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxRedirects: maxRedirects,
		log:          logger.New().With("download"),
	}
}

// Download writes the body of the final response to dest. dest is removed
// on failure.
func (d *HTTPDownloader) Download(ctx context.Context, rawURL, dest string) error {
	current, err := url.Parse(rawURL)

	if err != nil {
		return exception.New(exception.ErrDownload, err, "invalid download url")
	}

	if current.Scheme != "http" && current.Scheme != "https" {
		return exception.New(exception.ErrDownload, nil, "unsupported url scheme %q", current.Scheme)
	}

	origin := current.Redacted()

	for hops := 0; ; hops++ {
		resp, err := d.get(ctx, current)

		if err != nil {
			return exception.New(exception.ErrDownload, err, "download %s", current.Redacted())
		}

		location := resp.Header.Get("Location")

		if isRedirect(resp.StatusCode) && location != "" {
			resp.Body.Close()

			if hops >= d.maxRedirects {
				return exception.New(
					exception.ErrTooManyRedirects,
					nil,
					"download %s: more than %d redirects",
					origin,
					d.maxRedirects,
				)
			}

			target, err := current.Parse(location)

			if err != nil {
				return exception.New(exception.ErrDownload, err, "invalid redirect location %q", location)
			}

			d.log.Debug().
				Str("from", current.Redacted()).
				Str("to", target.Redacted()).
				Msg("following redirect")

			current = target

			continue
		}

		return d.save(resp, dest)
	}
}

func (d *HTTPDownloader) get(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)

	if err != nil {
		return nil, err
	}

	return d.client.Do(req)
}

func (d *HTTPDownloader) save(resp *http.Response, dest string) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return exception.New(exception.ErrDownload, nil, "download failed: %s", resp.Status)
	}

	out, err := os.Create(dest)

	if err != nil {
		return exception.New(exception.ErrDownload, err, "create %s", dest)
	}

	_, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()

	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(dest)
		return exception.New(exception.ErrDownload, err, "write %s", dest)
	}

	return nil
}

func isRedirect(code int) bool {
	return code >= 300 && code < 400
}
