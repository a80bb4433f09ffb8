package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/antgrillet/hbcaix-sync/app/cfg"
	"github.com/antgrillet/hbcaix-sync/app/club"
)

var _ PoolOpener = (*Navigator)(nil)

var (
	journeySegmentPattern = regexp.MustCompile(`/journee-\d+/?$`)
	dayLabelPattern       = regexp.MustCompile(`^J\d+$`)
)

// matchLinkSelector finds the per-match anchors inside a day panel.
const matchLinkSelector = `a[href*="rencontre-"]`

// PoolRootURL derives the pool root page from a configured URL. Team URLs
// sometimes point at a specific match day; the trailing journey segment is
// stripped so navigation always starts from the pool root.
func PoolRootURL(rawURL string) string {
	return journeySegmentPattern.ReplaceAllString(rawURL, "")
}

// Navigator drives a headless Chromium over a competition-pool page. One
// Open call owns one browser process, released by PoolPage.Close on every
// exit path.
type Navigator struct {
	browserPath    string
	userAgent      string
	consentLabels  []string
	navTimeout     time.Duration
	consentTimeout time.Duration
}

func NewNavigator(settings *club.Settings) *Navigator {
	appCfg := cfg.Get()

	return &Navigator{
		browserPath:    appCfg.BrowserPath,
		userAgent:      appCfg.UserAgent,
		consentLabels:  settings.ConsentLabels,
		navTimeout:     time.Duration(appCfg.NavTimeout) * time.Second,
		consentTimeout: time.Duration(appCfg.ConsentTimeout) * time.Second,
	}
}

// Open launches the browser, loads the pool root page, dismisses the cookie
// consent dialog if present and enumerates the day controls. Navigation
// failure here is fatal for the team's run; the caller handles it at the
// team boundary.
func (n *Navigator) Open(ctx context.Context, poolURL string) (PoolPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rootURL := PoolRootURL(poolURL)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	}
	if n.browserPath != "" {
		launchOpts.ExecutablePath = playwright.String(n.browserPath)
	}

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		UserAgent: playwright.String(n.userAgent),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(float64(n.navTimeout.Milliseconds()))

	pool := &poolPage{
		pw:      pw,
		browser: browser,
		page:    page,
		nav:     n,
	}

	if err := pool.load(rootURL); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

type poolPage struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	nav     *Navigator
	labels  []string
}

func (p *poolPage) load(rootURL string) error {
	slog.Debug("Loading pool root page", "url", rootURL)

	if _, err := p.page.Goto(rootURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("failed to load pool page %s: %w", rootURL, err)
	}

	p.dismissConsent()

	labels, err := p.collectDayLabels()
	if err != nil {
		return fmt.Errorf("failed to enumerate match days: %w", err)
	}
	p.labels = labels

	slog.Debug("Pool page loaded", "url", rootURL, "days", len(labels))
	return nil
}

// dismissConsent clicks through the cookie-consent dialog with a bounded
// wait. Absence of the dialog is not an error.
func (p *poolPage) dismissConsent() {
	timeout := playwright.Float(float64(p.nav.consentTimeout.Milliseconds()))

	for _, label := range p.nav.consentLabels {
		button := p.page.GetByText(label, playwright.PageGetByTextOptions{
			Exact: playwright.Bool(true),
		})
		if err := button.First().Click(playwright.LocatorClickOptions{Timeout: timeout}); err != nil {
			slog.Debug("Consent button not found", "label", label)
			continue
		}
		slog.Debug("Consent dialog dismissed", "label", label)
		return
	}
}

// collectDayLabels reads whatever J<n> controls are present on the page.
// The day count varies per pool; no count is assumed.
func (p *poolPage) collectDayLabels() ([]string, error) {
	controls, err := p.page.GetByText(dayLabelPattern).All()
	if err != nil {
		return nil, fmt.Errorf("failed to locate day controls: %w", err)
	}

	var labels []string
	seen := make(map[string]bool)
	for _, control := range controls {
		text, err := control.TextContent()
		if err != nil {
			continue
		}
		label := strings.TrimSpace(text)
		if !dayLabelPattern.MatchString(label) || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}

	return labels, nil
}

func (p *poolPage) DayLabels() []string {
	return p.labels
}

// OpenDay triggers one day's content panel and collects its match elements.
// Errors here are per-day: the extractor treats them as zero matches.
func (p *poolPage) OpenDay(label string) ([]MatchElement, error) {
	control := p.page.GetByText(label, playwright.PageGetByTextOptions{
		Exact: playwright.Bool(true),
	})
	if err := control.First().Click(); err != nil {
		return nil, fmt.Errorf("failed to open day %s: %w", label, err)
	}

	// The panel is swapped in place; give the page a beat to settle.
	p.page.WaitForTimeout(500)

	anchors, err := p.page.Locator(matchLinkSelector).All()
	if err != nil {
		return nil, fmt.Errorf("failed to collect match links for day %s: %w", label, err)
	}

	elements := make([]MatchElement, 0, len(anchors))
	for _, anchor := range anchors {
		text, err := anchor.InnerText()
		if err != nil {
			slog.Debug("Failed to read match element text", "day", label, "error", err)
			continue
		}
		html, err := anchor.InnerHTML()
		if err != nil {
			html = ""
		}
		elements = append(elements, newMatchElement(text, html))
	}

	return elements, nil
}

// Close releases the page, browser and driver. Safe to call after a partial
// Open failure.
func (p *poolPage) Close() error {
	var errs []error
	if p.page != nil {
		if err := p.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close page: %w", err))
		}
	}
	if p.browser != nil {
		if err := p.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}
	if p.pw != nil {
		if err := p.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}

// newMatchElement flattens the rendered text into the single-line encoding
// the classifier expects and extracts image metadata from the innerHTML.
// The DOM concatenates date, names and scores without separators; joining
// the rendered lines with no glue preserves that encoding.
func newMatchElement(text, html string) MatchElement {
	element := MatchElement{Text: flattenText(text)}

	if html == "" {
		return element
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		slog.Debug("Failed to parse match element HTML", "error", err)
		return element
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		element.Images = append(element.Images, ImageRef{
			Src:   src,
			Title: s.AttrOr("title", ""),
		})
	})

	return element
}

func flattenText(text string) string {
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(strings.TrimSpace(line))
	}
	return strings.TrimSpace(b.String())
}
