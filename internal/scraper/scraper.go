// Package scraper orchestrates a full page extraction: resolve the site,
// classify the page, extract candidates, validate and score them, then
// rank, dedupe and cap the survivors. Scrape never fails; a page with
// nothing usable yields an empty result.
package scraper

import (
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/arjunmehra/shopscout/internal/classify"
	"github.com/arjunmehra/shopscout/internal/config"
	"github.com/arjunmehra/shopscout/internal/extract"
	"github.com/arjunmehra/shopscout/internal/page"
	"github.com/arjunmehra/shopscout/internal/sites"
	"github.com/arjunmehra/shopscout/internal/types"
	"github.com/arjunmehra/shopscout/internal/validate"
)

// ordinalPrefix strips list numbering like "1. " that chart-style sites
// bake into their titles.
var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Scraper runs the extraction pipeline against a live or parsed page.
type Scraper struct {
	cfg       config.ScraperConfig
	registry  *sites.Registry
	extractor *extract.Extractor
	validator *validate.Validator
	logger    *slog.Logger
}

// New creates a Scraper with the built-in site registry.
func New(cfg config.Config, logger *slog.Logger) *Scraper {
	return &Scraper{
		cfg:       cfg.Scraper,
		registry:  sites.NewRegistry(),
		extractor: extract.New(logger),
		validator: validate.New(cfg.Validator, logger),
		logger:    logger.With("component", "scraper"),
	}
}

// Registry exposes the site registry, mainly so callers can register
// additional profiles before scraping.
func (s *Scraper) Registry() *sites.Registry { return s.registry }

// Scrape extracts, validates and ranks products from a page. The result is
// never nil and carries site and page context even when no products were
// found.
func (s *Scraper) Scrape(p page.Page) *types.ScrapeResult {
	pageURL := p.CurrentURL()
	profile := s.registry.Resolve(hostname(pageURL))
	pageType := classify.Classify(pageURL, profile)

	s.logger.Debug("scraping page",
		"url", pageURL,
		"site", profile.Key,
		"page_type", pageType)

	result := &types.ScrapeResult{
		Site: types.SiteInfo{Key: profile.Key, Name: profile.Name, Category: profile.Category},
		Page: types.PageInfo{
			Type:       pageType,
			URL:        pageURL,
			Title:      p.CurrentTitle(),
			IsHomepage: pageType == types.PageHomepage,
		},
	}

	set, ok := profile.SelectorsFor(pageType)
	var scored []scoredProduct
	if ok {
		scored = s.extractWith(p, set, profile.Category)
	}
	if len(scored) == 0 && profile.ProductLinkPattern != nil {
		s.logger.Debug("primary extraction empty, trying link fallback", "site", profile.Key)
		scored = s.extractFromLinks(p, profile.ProductLinkPattern, profile.Category)
	}

	result.Items = s.finalize(scored)
	result.Meta = types.NewResultMeta(len(result.Items), config.Version)

	s.logger.Info("scrape complete",
		"site", profile.Key,
		"page_type", pageType,
		"items", len(result.Items))
	return result
}

type scoredProduct struct {
	candidate types.Candidate
	score     int
}

// extractWith runs the primary container-based strategy. Container
// selectors are tried in order and the first one producing at least one
// named candidate wins outright; later selectors are never merged in.
func (s *Scraper) extractWith(p page.Page, set sites.SelectorSet, category string) []scoredProduct {
	for _, containerSel := range set.Containers {
		containers := p.Query(containerSel)
		if len(containers) == 0 {
			continue
		}

		var kept []scoredProduct
		named := false
		for i, el := range containers {
			c := types.Candidate{
				Index:    i,
				Name:     ordinalPrefix.ReplaceAllString(s.extractor.Text(el, set.Title, extract.MaxTitleLength), ""),
				Price:    s.extractor.Price(el, set.Price),
				Rating:   s.extractor.Rating(el, set.Rating),
				Image:    s.extractor.Image(el, set.Image),
				Category: category,
			}
			if c.Name != "" {
				named = true
			}

			res := s.validator.Validate(c)
			if !res.Valid {
				s.logger.Debug("candidate rejected", "index", i, "reason", res.Reason, "name", clip(c.Name, 60))
				continue
			}
			if score := validate.Score(c); score >= s.cfg.MinScore {
				kept = append(kept, scoredProduct{candidate: c, score: score})
			}
		}

		if named {
			return kept
		}
	}
	return nil
}

// finalize ranks by score, dedupes near-identical names, clips long names
// and caps the result size.
func (s *Scraper) finalize(scored []scoredProduct) []types.Product {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	seen := make(map[string]bool, len(scored))
	products := make([]types.Product, 0, len(scored))
	for _, sp := range scored {
		key := dedupKey(sp.candidate.Name, s.cfg.DedupPrefixLength)
		if seen[key] {
			continue
		}
		seen[key] = true

		products = append(products, types.Product{
			ID:       len(products) + 1,
			Name:     clip(sp.candidate.Name, s.cfg.MaxNameLength),
			Price:    sp.candidate.Price,
			Rating:   sp.candidate.Rating,
			Image:    sp.candidate.Image,
			Category: sp.candidate.Category,
		})
		if len(products) >= s.cfg.MaxItems {
			break
		}
	}
	return products
}

// dedupKey lowercases and clips a name so near-duplicate listings such as
// refurbished variants collapse to one entry.
func dedupKey(name string, prefixLen int) string {
	return clip(strings.ToLower(name), prefixLen)
}

// clip truncates to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
