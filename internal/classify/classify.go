// Package classify decides what kind of page is being viewed from its URL
// and the resolved site profile's URL patterns.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/arjunmehra/shopscout/internal/sites"
	"github.com/arjunmehra/shopscout/internal/types"
)

// localeRootPattern matches a bare locale root path like "/in" or "/de/".
var localeRootPattern = regexp.MustCompile(`^/[a-zA-Z]{2}/?$`)

// Classify determines the page type from a raw URL. Checks run in fixed
// priority order: product, then search, then category, then homepage.
// Absence of signal is treated as a homepage-like listing page rather than
// unknown, so some selector set always applies.
func Classify(rawURL string, profile *sites.Profile) types.PageType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return types.PageHomepage
	}
	return classifyParts(rawURL, u.Path, u.RawQuery, profile)
}

func classifyParts(rawURL, path, query string, profile *sites.Profile) types.PageType {
	if matchesAny(profile.Patterns.Product, rawURL, path, query) {
		return types.PageProduct
	}
	if matchesAny(profile.Patterns.Search, rawURL, path, query) {
		return types.PageSearch
	}
	if matchesAny(profile.Patterns.Category, rawURL, path, query) {
		return types.PageCategory
	}
	if path == "" || path == "/" || localeRootPattern.MatchString(path) {
		return types.PageHomepage
	}
	return types.PageHomepage
}

// matchesAny reports whether any pattern is a substring of the URL, the
// path, or the query string.
func matchesAny(patterns []string, rawURL, path, query string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(rawURL, p) || strings.Contains(path, p) || strings.Contains(query, p) {
			return true
		}
	}
	return false
}
