package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// assetExtensions mark link targets that are never documentation pages.
var assetExtensions = map[string]bool{
	".pdf":  true,
	".zip":  true,
	".tar":  true,
	".gz":   true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".avif": true,
	".ico":  true,
	".svg":  true,
	".css":  true,
	".js":   true,
}

// linkFilter applies the successor candidate rules for links found on the
// page at base.
type linkFilter struct {
	base *url.URL
	key  string
}

func newLinkFilter(base *url.URL) *linkFilter {
	return &linkFilter{base: base, key: comparisonKey(base)}
}

// resolve returns the absolute form of href without its fragment.
// Malformed and non-HTTP hrefs are reported as not ok.
func (f *linkFilter) resolve(href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	u := f.base.ResolveReference(ref)
	u.Fragment = ""
	u.RawFragment = ""
	return u, true
}

// accept returns the successor URL for sel if it passes every candidate
// rule: resolvable, same origin, not a self-link, not an asset, and not a
// language variant.
func (f *linkFilter) accept(sel *goquery.Selection) (string, bool) {
	if _, ok := sel.Attr("hreflang"); ok {
		return "", false
	}
	href, _ := sel.Attr("href")
	u, ok := f.resolve(href)
	if !ok {
		return "", false
	}
	if !sameOrigin(f.base, u) {
		return "", false
	}
	if comparisonKey(u) == f.key {
		return "", false
	}
	if assetExtensions[strings.ToLower(path.Ext(u.Path))] {
		return "", false
	}
	return u.String(), true
}

// isCurrent reports whether sel links to the page at base.
func (f *linkFilter) isCurrent(sel *goquery.Selection) bool {
	href, _ := sel.Attr("href")
	u, ok := f.resolve(href)
	if !ok {
		return false
	}
	return sameOrigin(f.base, u) && normalizePath(u.Path) == normalizePath(f.base.Path)
}

// comparisonKey identifies a page ignoring query, fragment and a trailing
// slash.
func comparisonKey(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + normalizePath(u.Path)
}

func normalizePath(p string) string {
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return "/"
	}
	return p
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// candidates is an insertion-ordered set of URLs.
type candidates struct {
	seen map[string]bool
	urls []string
}

func (c *candidates) add(u string, ok bool) {
	if !ok || c.seen[u] {
		return
	}
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	c.seen[u] = true
	c.urls = append(c.urls, u)
}
