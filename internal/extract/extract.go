// Package extract pulls normalized field values out of page elements using
// ordered selector lists. The first selector that yields usable content
// wins; everything after it is ignored.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/arjunmehra/shopscout/internal/page"
)

const (
	// MaxTitleLength caps extracted titles.
	MaxTitleLength = 250
	// MaxPriceLength caps the raw text searched for a price run.
	MaxPriceLength = 50
	// MaxRatingLength caps the raw text searched for a rating run.
	MaxRatingLength = 30
)

var (
	// priceRun matches an optional currency symbol followed by digits with
	// optional thousands separators and an optional decimal part.
	priceRun = regexp.MustCompile(`[₹$€£¥]?\s?\d[\d,]*(?:\.\d+)?`)

	// ratingRun matches the first decimal-number run.
	ratingRun = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Extractor reads field values off container elements.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor.
func New(logger *slog.Logger) *Extractor {
	return &Extractor{
		logger: logger.With("component", "extractor"),
	}
}

// Text tries each selector in order and returns the first acceptable text
// value: trimmed, internal whitespace collapsed, strictly between 2 and
// maxLen runes. An empty text node falls back to the element's alt
// attribute, which covers image-only labels. Returns "" when nothing
// acceptable is found.
func (e *Extractor) Text(el page.Element, selectors []string, maxLen int) string {
	for _, sel := range selectors {
		matches := el.Query(sel)
		if len(matches) == 0 {
			continue
		}

		text := collapseWhitespace(matches[0].Text())
		if text == "" {
			text = collapseWhitespace(matches[0].Attr("alt"))
		}
		if n := len([]rune(text)); n > 2 && n < maxLen {
			return text
		}
	}
	return ""
}

// Price extracts a price string, narrowing the matched text to the first
// currency-or-digit run. Falls back to the raw trimmed text when no run is
// found.
func (e *Extractor) Price(el page.Element, selectors []string) string {
	raw := e.Text(el, selectors, MaxPriceLength)
	if raw == "" {
		return ""
	}
	if run := priceRun.FindString(raw); run != "" {
		return strings.TrimSpace(run)
	}
	return raw
}

// Rating extracts a rating string, narrowing to the first decimal-number
// run. Falls back to the raw trimmed text when no run is found.
func (e *Extractor) Rating(el page.Element, selectors []string) string {
	raw := e.Text(el, selectors, MaxRatingLength)
	if raw == "" {
		return ""
	}
	if run := ratingRun.FindString(raw); run != "" {
		return run
	}
	return raw
}

// Image returns the first non-empty src or data-src attribute among the
// matched elements across all selectors, unprocessed.
func (e *Extractor) Image(el page.Element, selectors []string) string {
	for _, sel := range selectors {
		for _, match := range el.Query(sel) {
			if src := match.Attr("src"); src != "" {
				return src
			}
			if src := match.Attr("data-src"); src != "" {
				return src
			}
		}
	}
	return ""
}

// collapseWhitespace trims and squeezes runs of whitespace to one space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
