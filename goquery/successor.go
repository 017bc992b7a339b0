package goquery

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docchain"
)

// Ensure SuccessorFinder implements docchain.SuccessorFinder at compile time.
var _ docchain.SuccessorFinder = (*SuccessorFinder)(nil)

// Tier names reported by Detect.
const (
	TierRelation   = "relation"
	TierText       = "text"
	TierNavigation = "navigation"
)

// DefaultRelationSelectors match explicit "next page" markup. Anchors whose
// class or aria-label contains "next", or that sit in a close ancestor marked
// with a "next" word, are matched in addition to these.
var DefaultRelationSelectors = []string{
	`a[rel~="next"]`,
	`link[rel~="next"]`,
	`[class*="footer"][class*="next"] a`,
	`a[class*="footer"][class*="next"]`,
}

// DefaultNavigationSelectors are the containers scanned, in document order,
// to infer the next page from a navigation menu.
var DefaultNavigationSelectors = []string{
	"nav",
	`[role="navigation"]`,
	".site-nav",
	".sidebar",
	".sidebar-nav",
	".side-nav",
	".sidebar-links",
	".theme-doc-sidebar-container",
	".md-nav--primary",
	".wy-menu-vertical",
	".sphinxsidebar",
	".VPSidebar",
	`[data-testid="space.sidebar"]`,
}

// tier is one level of the successor policy.
type tier struct {
	name string
	find func(doc *goquery.Document, filter *linkFilter) []string
}

// SuccessorFinder detects the next page of a documentation chain using a
// tiered policy: explicit "next" markup, then an anchor reading "Next",
// then the entry following the current page in the navigation menu.
// The first tier producing a candidate wins.
type SuccessorFinder struct {
	relationSelectors   []string
	navigationSelectors []string
	tiers               []tier
}

// SuccessorOption configures a SuccessorFinder.
type SuccessorOption func(*SuccessorFinder)

// WithRelationSelectors replaces DefaultRelationSelectors.
func WithRelationSelectors(selectors ...string) SuccessorOption {
	return func(f *SuccessorFinder) {
		f.relationSelectors = selectors
	}
}

// WithNavigationSelectors replaces DefaultNavigationSelectors.
func WithNavigationSelectors(selectors ...string) SuccessorOption {
	return func(f *SuccessorFinder) {
		f.navigationSelectors = selectors
	}
}

// NewSuccessorFinder creates a new SuccessorFinder.
func NewSuccessorFinder(opts ...SuccessorOption) *SuccessorFinder {
	f := &SuccessorFinder{
		relationSelectors:   DefaultRelationSelectors,
		navigationSelectors: DefaultNavigationSelectors,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.tiers = []tier{
		{name: TierRelation, find: f.findByRelation},
		{name: TierText, find: f.findByText},
		{name: TierNavigation, find: f.findByNavigation},
	}
	return f
}

// FindSuccessors returns the URLs of the pages following baseURL.
func (f *SuccessorFinder) FindSuccessors(baseURL, html string) ([]string, error) {
	urls, _, err := f.Detect(baseURL, html)
	return urls, err
}

// Detect is like FindSuccessors but also reports which tier matched.
// The tier is empty when no successor was found.
func (f *SuccessorFinder) Detect(baseURL, html string) ([]string, string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, "", docchain.Errorf(docchain.EINVALID, "invalid base URL: %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", docchain.Errorf(docchain.EINVALID, "failed to parse HTML: %v", err)
	}

	filter := newLinkFilter(base)
	for _, t := range f.tiers {
		if urls := t.find(doc, filter); len(urls) > 0 {
			return urls, t.name, nil
		}
	}
	return nil, "", nil
}

func (f *SuccessorFinder) findByRelation(doc *goquery.Document, filter *linkFilter) []string {
	var c candidates
	for _, selector := range f.relationSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			c.add(filter.accept(sel))
		})
	}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if attrContainsFold(sel, "class", "next") || attrContainsFold(sel, "aria-label", "next") || inNextContainer(sel) {
			c.add(filter.accept(sel))
		}
	})
	return c.urls
}

// maxNextAncestors bounds how far above an anchor a "next" container is
// looked for.
const maxNextAncestors = 3

// inNextContainer reports whether a close ancestor of the anchor marks it as
// the next-page control with a "next" word in its class or aria-label, as in
// <li class="next"><a>. Anchors marked previous and containers holding both
// directions do not count.
func inNextContainer(sel *goquery.Selection) bool {
	own := markerWords(sel)
	for _, w := range splitWords(sel.AttrOr("rel", "")) {
		own[w] = true
	}
	if own["prev"] || own["previous"] {
		return false
	}

	found := false
	sel.Parents().EachWithBreak(func(i int, p *goquery.Selection) bool {
		if i >= maxNextAncestors || goquery.NodeName(p) == "body" {
			return false
		}
		words := markerWords(p)
		if words["prev"] || words["previous"] {
			return false
		}
		if words["next"] {
			found = true
			return false
		}
		return true
	})
	return found
}

// markerWords returns the lowercased words of the class and aria-label
// attributes.
func markerWords(sel *goquery.Selection) map[string]bool {
	words := make(map[string]bool)
	for _, attr := range []string{"class", "aria-label"} {
		for _, w := range splitWords(sel.AttrOr(attr, "")) {
			words[w] = true
		}
	}
	return words
}

// splitWords splits s into lowercase words at non-letters and camelCase
// boundaries: "pagination-nextPage" gives pagination, next, page.
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	lower := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			flush()
			lower = false
		case unicode.IsUpper(r) && lower:
			flush()
			cur = append(cur, r)
			lower = false
		default:
			cur = append(cur, r)
			lower = unicode.IsLower(r)
		}
	}
	flush()
	return words
}

func (f *SuccessorFinder) findByText(doc *goquery.Document, filter *linkFilter) []string {
	var c candidates
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if strings.EqualFold(strings.TrimSpace(sel.Text()), "next") {
			c.add(filter.accept(sel))
		}
	})
	return c.urls
}

func (f *SuccessorFinder) findByNavigation(doc *goquery.Document, filter *linkFilter) []string {
	if len(f.navigationSelectors) == 0 {
		return nil
	}
	anchors := make([]string, len(f.navigationSelectors))
	for i, s := range f.navigationSelectors {
		anchors[i] = s + " a[href]"
	}

	var next string
	found := false
	doc.Find(strings.Join(anchors, ", ")).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !found {
			found = filter.isCurrent(sel)
			return true
		}
		if u, ok := filter.accept(sel); ok {
			next = u
			return false
		}
		return true
	})
	if next == "" {
		return nil
	}
	return []string{next}
}

func attrContainsFold(sel *goquery.Selection, attr, substr string) bool {
	v, ok := sel.Attr(attr)
	return ok && strings.Contains(strings.ToLower(v), substr)
}
