package page

import (
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// StaticPage implements Page over an already-fetched HTML document.
type StaticPage struct {
	url    string
	title  string
	doc    *goquery.Document
	root   *html.Node
	logger *slog.Logger
}

// NewStaticPage parses HTML from r into a queryable page.
func NewStaticPage(pageURL string, r io.Reader, logger *slog.Logger) (*StaticPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	p := &StaticPage{
		url:    pageURL,
		doc:    doc,
		root:   doc.Get(0),
		logger: logger.With("component", "static_page"),
	}
	p.title = strings.TrimSpace(doc.Find("title").First().Text())
	return p, nil
}

// CurrentURL implements Page.
func (p *StaticPage) CurrentURL() string { return p.url }

// CurrentTitle implements Page.
func (p *StaticPage) CurrentTitle() string { return p.title }

// Query implements Page. CSS selectors are pre-compiled with cascadia so a
// malformed selector degrades to "no match" instead of panicking inside
// goquery; XPath selectors (leading "/" or "./") go through htmlquery.
func (p *StaticPage) Query(selector string) []Element {
	if isXPath(selector) {
		return p.queryXPath(p.root, selector)
	}

	matcher, err := cascadia.Compile(selector)
	if err != nil {
		p.logger.Debug("selector rejected", "selector", selector, "error", err)
		return nil
	}

	return p.wrapSelection(p.doc.FindMatcher(matcher))
}

func (p *StaticPage) queryXPath(ctx *html.Node, expr string) []Element {
	nodes, err := htmlquery.QueryAll(ctx, expr)
	if err != nil {
		p.logger.Debug("xpath rejected", "selector", expr, "error", err)
		return nil
	}

	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		elements = append(elements, &staticElement{
			page: p,
			sel:  goquery.NewDocumentFromNode(n).Selection,
		})
	}
	return elements
}

func (p *StaticPage) wrapSelection(sel *goquery.Selection) []Element {
	elements := make([]Element, 0, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		elements = append(elements, &staticElement{page: p, sel: s})
	})
	return elements
}

// staticElement wraps a single-node goquery selection.
type staticElement struct {
	page *StaticPage
	sel  *goquery.Selection
}

// Text implements Element.
func (e *staticElement) Text() string {
	return e.sel.Text()
}

// Attr implements Element.
func (e *staticElement) Attr(name string) string {
	return e.sel.AttrOr(name, "")
}

// Query implements Element, scoped to the element's descendants.
func (e *staticElement) Query(selector string) []Element {
	if isXPath(selector) {
		if len(e.sel.Nodes) == 0 {
			return nil
		}
		return e.page.queryXPath(e.sel.Nodes[0], selector)
	}

	matcher, err := cascadia.Compile(selector)
	if err != nil {
		e.page.logger.Debug("selector rejected", "selector", selector, "error", err)
		return nil
	}

	return e.page.wrapSelection(e.sel.FindMatcher(matcher))
}

// Parent implements Element.
func (e *staticElement) Parent() Element {
	parent := e.sel.Parent()
	if parent.Length() == 0 {
		return nil
	}
	if n := parent.Get(0); n.Type != html.ElementNode || n.Data == "html" {
		return nil
	}
	return &staticElement{page: e.page, sel: parent}
}
