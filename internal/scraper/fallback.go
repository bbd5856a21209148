package scraper

import (
	"regexp"
	"strings"

	"github.com/arjunmehra/shopscout/internal/extract"
	"github.com/arjunmehra/shopscout/internal/page"
	"github.com/arjunmehra/shopscout/internal/types"
	"github.com/arjunmehra/shopscout/internal/validate"
)

// fallbackPriceSelectors look for a price anywhere near a product link when
// the container-based strategy found nothing.
var fallbackPriceSelectors = []string{
	".a-price .a-offscreen",
	`[class*="price"]`,
}

// maxAncestorHops bounds how far up from an anchor the fallback searches
// for price and image context.
const maxAncestorHops = 3

// extractFromLinks is the last-resort strategy for sites whose listing
// markup changed under the configured selectors. It scans every anchor on
// the page for product-detail URLs, takes the anchor text as the name and
// climbs a few ancestors for a price and image. Candidates still pass
// through the same validation and scoring as the primary path.
func (s *Scraper) extractFromLinks(p page.Page, linkPattern *regexp.Regexp, category string) []scoredProduct {
	seen := make(map[string]bool)
	var kept []scoredProduct

	for i, a := range p.Query("a") {
		href := a.Attr("href")
		m := linkPattern.FindStringSubmatch(href)
		if m == nil || len(m) < 2 {
			continue
		}
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true

		name := strings.Join(strings.Fields(a.Text()), " ")
		if len(name) < 10 {
			name = s.extractor.Text(a, []string{"img"}, extract.MaxTitleLength)
		}

		c := types.Candidate{
			Index:    i,
			Name:     ordinalPrefix.ReplaceAllString(name, ""),
			Category: category,
		}
		c.Price, c.Image = s.nearbyContext(a)

		res := s.validator.Validate(c)
		if !res.Valid {
			continue
		}
		if score := validate.Score(c); score >= s.cfg.MinScore {
			kept = append(kept, scoredProduct{candidate: c, score: score})
		}
	}

	s.logger.Debug("link fallback finished", "links", len(seen), "kept", len(kept))
	return kept
}

// nearbyContext climbs from an anchor looking for the closest price text
// and product image.
func (s *Scraper) nearbyContext(a page.Element) (price, image string) {
	node := a.Parent()
	for hop := 0; node != nil && hop < maxAncestorHops; hop++ {
		if price == "" {
			price = s.extractor.Price(node, fallbackPriceSelectors)
		}
		if image == "" {
			image = s.extractor.Image(node, []string{"img"})
		}
		if price != "" && image != "" {
			break
		}
		node = node.Parent()
	}
	return price, image
}
