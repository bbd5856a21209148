package types

import (
	"time"
)

// PageType is the coarse classification of the page being viewed.
type PageType string

const (
	PageHomepage PageType = "homepage"
	PageSearch   PageType = "search"
	PageProduct  PageType = "product"
	PageCategory PageType = "category"
	PageUnknown  PageType = "unknown"
)

// Candidate is an unvalidated record extracted from one container element.
type Candidate struct {
	// Index is the position of the source element among its container matches.
	Index int

	Name     string
	Price    string
	Rating   string
	Image    string
	Category string
}

// Product is a validated, deduplicated listing as returned to callers.
// The confidence score used for ranking is dropped before this shape is built.
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price,omitempty"`
	Rating   string `json:"rating,omitempty"`
	Image    string `json:"image,omitempty"`
	Category string `json:"type,omitempty"`
}

// SiteInfo identifies the resolved site profile.
type SiteInfo struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// PageInfo describes the classified page.
type PageInfo struct {
	Type       PageType `json:"type"`
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	IsHomepage bool     `json:"is_homepage"`
}

// ResultMeta carries bookkeeping about a scrape pass.
type ResultMeta struct {
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ScrapeResult is the full output of one scrape pass. It is produced fresh
// each time and never persisted across navigations.
type ScrapeResult struct {
	Site  SiteInfo   `json:"site"`
	Page  PageInfo   `json:"page"`
	Items []Product  `json:"items"`
	Meta  ResultMeta `json:"meta"`
}

// NewResultMeta builds the meta block for a result with the given item count.
func NewResultMeta(count int, version string) ResultMeta {
	return ResultMeta{
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   version,
	}
}
