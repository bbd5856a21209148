// Package fetch downloads page HTML over plain HTTP for sites that render
// their listings server-side. JavaScript-heavy pages need the browser path
// in internal/page instead.
package fetch

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/arjunmehra/shopscout/internal/config"
	"github.com/arjunmehra/shopscout/internal/page"
	"github.com/arjunmehra/shopscout/internal/types"
)

// HTTPFetcher downloads a URL and parses it into a static page.
type HTTPFetcher struct {
	client *http.Client
	cfg    config.FetcherConfig
	logger *slog.Logger
}

// NewHTTPFetcher creates an HTTP fetcher.
func NewHTTPFetcher(cfg config.FetcherConfig, logger *slog.Logger) (*HTTPFetcher, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		// Decompression is handled below so brotli responses work too.
		DisableCompression: true,
	}

	redirectPolicy := func(req *http.Request, via []*http.Request) error {
		if !cfg.FollowRedirects {
			return http.ErrUseLastResponse
		}
		if len(via) >= cfg.MaxRedirects {
			return fmt.Errorf("max redirects (%d) reached", cfg.MaxRedirects)
		}
		return nil
	}

	return &HTTPFetcher{
		client: &http.Client{
			Transport:     transport,
			Jar:           jar,
			Timeout:       cfg.Timeout,
			CheckRedirect: redirectPolicy,
		},
		cfg:    cfg,
		logger: logger.With("component", "http_fetcher"),
	}, nil
}

// Fetch downloads a URL and returns it as a queryable static page.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*page.StaticPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidURL, err)
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if f.cfg.MaxBodySize > 0 {
		reader = io.LimitReader(reader, f.cfg.MaxBodySize)
	}
	reader, err = decompressReader(resp, reader)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	p, err := page.NewStaticPage(pageURL, reader, f.logger)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("fetch complete",
		"url", pageURL,
		"status", resp.StatusCode,
		"duration", time.Since(start))
	return p, nil
}

// Close releases idle connections.
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// decompressReader wraps a reader with the decompressor matching the
// response's Content-Encoding. Handles gzip, deflate, and brotli.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}
