// Package goquery provides HTML content extraction and successor link
// detection using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docchain"
)

// Ensure Extractor implements docchain.Extractor at compile time.
var _ docchain.Extractor = (*Extractor)(nil)

// DefaultContentSelectors is the main-content priority list. The first
// selector matching any element wins; the order reproduces extraction
// results across common documentation themes.
var DefaultContentSelectors = []string{
	`[role="main"]`,
	"main",
	".md-content",
	".theme-doc-markdown",
	".rst-content",
	".vp-doc",
	".theme-default-content",
	".markdown-body",
	".documentation-content",
	".docs-content",
	".main-content",
	".content",
	"article",
	"#content",
	"#main-content",
	".page-content",
	".post-content",
}

// DefaultChromeSelectors are removed from the selected content region.
var DefaultChromeSelectors = []string{
	"nav",
	"header",
	"footer",
	"aside",
	"script",
	"style",
	"noscript",
	"template",
	"form",
	"iframe",
	`[role="navigation"]`,
	`[role="banner"]`,
	`[role="contentinfo"]`,
	`[role="complementary"]`,
	`[role="search"]`,
	".sidebar",
	".navbar",
	".breadcrumbs",
	".breadcrumb",
	".toc",
	".table-of-contents",
	`[aria-hidden="true"]`,
	"[hidden]",
	`[style*="display:none"]`,
	`[style*="display: none"]`,
	".skip-link",
	".skip-to-content",
	`[class*="skipToContent"]`,
	"a.headerlink",
	"a.hash-link",
}

// Extractor selects a page's main content region and strips page chrome.
type Extractor struct {
	contentSelectors []string
	chromeSelector   string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithContentSelectors replaces DefaultContentSelectors.
func WithContentSelectors(selectors ...string) ExtractorOption {
	return func(e *Extractor) {
		e.contentSelectors = selectors
	}
}

// WithChromeSelectors replaces DefaultChromeSelectors.
func WithChromeSelectors(selectors ...string) ExtractorOption {
	return func(e *Extractor) {
		e.chromeSelector = strings.Join(selectors, ", ")
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		contentSelectors: DefaultContentSelectors,
		chromeSelector:   strings.Join(DefaultChromeSelectors, ", "),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML, pageURL string) (*docchain.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docchain.Errorf(docchain.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docchain.Errorf(docchain.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &docchain.ExtractResult{
		Title:    pageTitle(doc),
		ImageURL: firstImage(doc, pageURL),
	}

	region := e.selectRegion(doc)
	if e.chromeSelector != "" {
		region.Find(e.chromeSelector).Remove()
	}

	if strings.TrimSpace(region.Text()) == "" && region.Find("img, pre, table").Length() == 0 {
		return nil, docchain.Errorf(docchain.ENOTFOUND, docchain.ReasonNoMainContent)
	}

	result.ContentHTML, err = region.Html()
	if err != nil {
		return nil, err
	}
	return result, nil
}

// selectRegion returns the first element matched by the content selector
// priority list, or the body when none match.
func (e *Extractor) selectRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find("body").First()
}

func pageTitle(doc *goquery.Document) string {
	for _, selector := range []string{"title", "h1"} {
		if title := collapseSpace(doc.Find(selector).First().Text()); title != "" {
			return title
		}
	}
	return docchain.UntitledPage
}

// firstImage returns the absolute URL of the first image in the document.
func firstImage(doc *goquery.Document, pageURL string) string {
	var src string
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, attr := range []string{"src", "data-src"} {
			if v := strings.TrimSpace(sel.AttrOr(attr, "")); v != "" {
				src = v
				return false
			}
		}
		return true
	})
	if src == "" || strings.HasPrefix(src, "data:") {
		return src
	}

	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
