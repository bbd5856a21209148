package page

import (
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/arjunmehra/shopscout/internal/config"
)

// BrowserPage implements Page over a live headless-browser tab via Rod.
// It lets the pipeline run against fully rendered markup on sites that
// build their listings client-side.
type BrowserPage struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     config.BrowserConfig
	logger  *slog.Logger
}

// OpenBrowserPage launches a browser, navigates to targetURL and waits for
// the page to settle. The caller must Close the returned page.
func OpenBrowserPage(targetURL string, cfg config.BrowserConfig, logger *slog.Logger) (*BrowserPage, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	launchURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	var pg *rod.Page
	if cfg.Stealth {
		pg, err = stealth.Page(browser)
	} else {
		pg, err = browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}

	bp := &BrowserPage{
		browser: browser,
		page:    pg,
		cfg:     cfg,
		logger:  logger.With("component", "browser_page"),
	}

	if err := pg.Timeout(cfg.NavigationTimeout).Navigate(targetURL); err != nil {
		_ = bp.Close()
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if err := pg.Timeout(cfg.NavigationTimeout).WaitStable(cfg.StableWait); err != nil {
		bp.logger.Warn("page stability timeout, continuing", "url", targetURL, "error", err)
	}

	return bp, nil
}

// CurrentURL implements Page.
func (p *BrowserPage) CurrentURL() string {
	info, err := p.page.Info()
	if err != nil || info == nil {
		return ""
	}
	return info.URL
}

// CurrentTitle implements Page.
func (p *BrowserPage) CurrentTitle() string {
	info, err := p.page.Info()
	if err != nil || info == nil {
		return ""
	}
	return info.Title
}

// Query implements Page. Selector evaluation errors degrade to no matches.
func (p *BrowserPage) Query(selector string) []Element {
	var (
		els rod.Elements
		err error
	)
	if isXPath(selector) {
		els, err = p.page.ElementsX(selector)
	} else {
		els, err = p.page.Elements(selector)
	}
	if err != nil {
		p.logger.Debug("selector rejected", "selector", selector, "error", err)
		return nil
	}
	return wrapRodElements(p, els)
}

// Close shuts down the tab and the browser.
func (p *BrowserPage) Close() error {
	if p.page != nil {
		_ = p.page.Close()
	}
	if p.browser != nil {
		return p.browser.Close()
	}
	return nil
}

func wrapRodElements(p *BrowserPage, els rod.Elements) []Element {
	elements := make([]Element, 0, len(els))
	for _, el := range els {
		elements = append(elements, &browserElement{page: p, el: el})
	}
	return elements
}

// browserElement wraps a live DOM element handle.
type browserElement struct {
	page *BrowserPage
	el   *rod.Element
}

// Text implements Element.
func (e *browserElement) Text() string {
	text, err := e.el.Text()
	if err != nil {
		return ""
	}
	return text
}

// Attr implements Element.
func (e *browserElement) Attr(name string) string {
	val, err := e.el.Attribute(name)
	if err != nil || val == nil {
		return ""
	}
	return *val
}

// Query implements Element, scoped to descendants.
func (e *browserElement) Query(selector string) []Element {
	var (
		els rod.Elements
		err error
	)
	if isXPath(selector) {
		els, err = e.el.ElementsX(selector)
	} else {
		els, err = e.el.Elements(selector)
	}
	if err != nil {
		e.page.logger.Debug("selector rejected", "selector", selector, "error", err)
		return nil
	}
	return wrapRodElements(e.page, els)
}

// Parent implements Element.
func (e *browserElement) Parent() Element {
	parent, err := e.el.Parent()
	if err != nil || parent == nil {
		return nil
	}
	return &browserElement{page: e.page, el: parent}
}
