// Package page provides the queryable-page capability the extraction
// pipeline runs against: something that can report the current URL and
// title, evaluate a selector, and read text or attributes off the matched
// elements. Two implementations exist: a static one over parsed HTML and
// a live one over a headless browser tab. Both are read-only: nothing in
// this package ever mutates the underlying page.
package page

// Element is a handle to a single matched element.
type Element interface {
	// Text returns the element's text content, untrimmed.
	Text() string

	// Attr returns the value of the named attribute, or "" when absent.
	Attr(name string) string

	// Query evaluates a selector scoped to this element's descendants.
	// Invalid or unsupported selectors yield an empty result, never an error.
	Query(selector string) []Element

	// Parent returns the parent element, or nil at the document root.
	Parent() Element
}

// Page is a queryable view of the currently rendered document.
type Page interface {
	// CurrentURL returns the page's address.
	CurrentURL() string

	// CurrentTitle returns the document title.
	CurrentTitle() string

	// Query evaluates a selector against the whole document.
	// Invalid or unsupported selectors yield an empty result, never an error.
	Query(selector string) []Element
}

// isXPath reports whether a selector should be evaluated as an XPath
// expression rather than CSS. Selector lists may mix both.
func isXPath(selector string) bool {
	if selector == "" {
		return false
	}
	return selector[0] == '/' || (len(selector) > 1 && selector[0] == '.' && selector[1] == '/')
}
