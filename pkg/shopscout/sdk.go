// Package shopscout provides a public SDK for embedding the shopping
// assistant as a library.
//
// Example usage:
//
//	assistant := shopscout.New(
//	    shopscout.WithBackendURL("http://localhost:8080/chat"),
//	    shopscout.WithCacheTTL(5*time.Minute),
//	)
//	defer assistant.Close()
//
//	result, err := assistant.ScrapeURL(ctx, "https://www.amazon.in/s?k=laptops")
//	answer, err := assistant.Ask(ctx, "cheapest laptop under 50000", result)
package shopscout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arjunmehra/shopscout/internal/backend"
	"github.com/arjunmehra/shopscout/internal/cache"
	"github.com/arjunmehra/shopscout/internal/config"
	"github.com/arjunmehra/shopscout/internal/fetch"
	"github.com/arjunmehra/shopscout/internal/intent"
	"github.com/arjunmehra/shopscout/internal/page"
	"github.com/arjunmehra/shopscout/internal/scraper"
	"github.com/arjunmehra/shopscout/internal/types"
)

// Result is re-exported so SDK users avoid the internal import.
type Result = types.ScrapeResult

// Product is re-exported for SDK users.
type Product = types.Product

// Assistant is the high-level API: scrape a listing page, then answer
// questions about it.
type Assistant struct {
	cfg     *config.Config
	scraper *scraper.Scraper
	fetcher *fetch.HTTPFetcher
	cache   *cache.ResultCache
	backend *backend.Client
	logger  *slog.Logger
}

// Option configures an Assistant.
type Option func(*config.Config)

// WithBackendURL points the assistant at a different answer service.
func WithBackendURL(url string) Option {
	return func(c *config.Config) { c.Backend.URL = url }
}

// WithBackendTimeout sets the answer service call timeout.
func WithBackendTimeout(d time.Duration) Option {
	return func(c *config.Config) { c.Backend.Timeout = d }
}

// WithCacheTTL sets how long answers stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config.Config) { c.Cache.TTL = ttl }
}

// WithMaxItems caps the number of products per scrape.
func WithMaxItems(n int) Option {
	return func(c *config.Config) { c.Scraper.MaxItems = n }
}

// WithMinScore sets the product-likeness acceptance threshold.
func WithMinScore(score int) Option {
	return func(c *config.Config) { c.Scraper.MinScore = score }
}

// WithUserAgent sets the User-Agent for static fetches.
func WithUserAgent(ua string) Option {
	return func(c *config.Config) { c.Fetcher.UserAgent = ua }
}

// WithBrowser toggles headless-browser page loading for ScrapeURL.
func WithBrowser(headless bool) Option {
	return func(c *config.Config) {
		c.Browser.Enabled = true
		c.Browser.Headless = headless
	}
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// New creates an Assistant with the given options.
func New(opts ...Option) *Assistant {
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return NewWithConfig(cfg, logger)
}

// NewWithConfig creates an Assistant from an explicit config and logger.
func NewWithConfig(cfg *config.Config, logger *slog.Logger) *Assistant {
	return &Assistant{
		cfg:     cfg,
		scraper: scraper.New(*cfg, logger),
		cache:   cache.New(cfg.Cache.TTL),
		backend: backend.NewClient(cfg.Backend, logger),
		logger:  logger.With("component", "assistant"),
	}
}

// ScrapeURL loads a URL and extracts its products. With WithBrowser set the
// page is rendered in a headless browser; otherwise it is fetched over
// plain HTTP.
func (a *Assistant) ScrapeURL(ctx context.Context, rawURL string) (*Result, error) {
	if err := config.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	if a.cfg.Browser.Enabled {
		bp, err := page.OpenBrowserPage(rawURL, a.cfg.Browser, a.logger)
		if err != nil {
			return nil, fmt.Errorf("open browser page: %w", err)
		}
		defer bp.Close()
		return a.scraper.Scrape(bp), nil
	}

	if a.fetcher == nil {
		f, err := fetch.NewHTTPFetcher(a.cfg.Fetcher, a.logger)
		if err != nil {
			return nil, err
		}
		a.fetcher = f
	}

	p, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return a.scraper.Scrape(p), nil
}

// ScrapePage extracts products from an already-loaded page.
func (a *Assistant) ScrapePage(p page.Page) *Result {
	return a.scraper.Scrape(p)
}

// Ask answers a question about a scraped page. Conversational queries are
// answered locally; product questions are filtered, summarized and sent to
// the answer service. When the backend is unreachable Ask degrades to a
// locally computed summary instead of failing.
func (a *Assistant) Ask(ctx context.Context, query string, result *Result) (string, error) {
	if result == nil {
		return "", errors.New("nil scrape result")
	}

	if answer, err := a.cache.Get(query, result.Page.URL); err == nil {
		a.logger.Debug("cache hit", "query", query)
		return answer, nil
	}

	in := intent.Classify(query)
	if intent.Conversational(in) {
		return intent.LocalReply(in, len(result.Items)), nil
	}

	products := result.Items
	if f := intent.ParseFilters(query); !f.Empty() {
		products = intent.ApplyFilters(products, f)
	}

	answer, err := a.backend.Ask(ctx, backend.AskRequest{
		Query:     query,
		Products:  products,
		PageURL:   result.Page.URL,
		PageTitle: result.Page.Title,
		SiteType:  result.Site.Category,
		PageType:  result.Page.Type,
		ItemCount: len(result.Items),
	})
	if err != nil {
		if errors.Is(err, types.ErrBackendUnavailable) {
			a.logger.Warn("backend unavailable, using local summary", "error", err)
			return localSummary(products), nil
		}
		return "", err
	}

	a.cache.Set(query, result.Page.URL, answer)
	return answer, nil
}

// ClearCache drops all cached answers.
func (a *Assistant) ClearCache() {
	a.cache.Clear()
}

// Close releases the assistant's network resources.
func (a *Assistant) Close() error {
	if a.fetcher != nil {
		return a.fetcher.Close()
	}
	return nil
}

// localSummary builds a degraded answer from the filtered products when the
// answer service cannot be reached.
func localSummary(products []Product) string {
	if len(products) == 0 {
		return "I couldn't find matching products on this page for that question."
	}

	a := intent.Analyze(products)
	s := fmt.Sprintf("I found %d matching products.", a.Count)
	if a.Priced > 0 {
		s += fmt.Sprintf(" Prices range from %.0f to %.0f (avg %.0f).", a.MinPrice, a.MaxPrice, a.AvgPrice)
		if a.Cheapest != "" {
			s += fmt.Sprintf(" The cheapest is %q.", a.Cheapest)
		}
	}
	if a.Rated > 0 {
		s += fmt.Sprintf(" Average rating is %.1f.", a.AvgRating)
	}
	return s
}
