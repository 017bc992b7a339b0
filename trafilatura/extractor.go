// Package trafilatura provides a docchain.Extractor backed by
// go-trafilatura's boilerplate removal.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/docchain"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docchain.Extractor at compile time.
var _ docchain.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Pages that
// trafilatura cannot find content in report ReasonNoMainContent.
func (e *Extractor) Extract(rawHTML, pageURL string) (*docchain.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docchain.Errorf(docchain.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	base, _ := url.Parse(pageURL)
	if base != nil && base.IsAbs() {
		opts.OriginalURL = base
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result == nil || result.ContentNode == nil {
		return nil, docchain.Errorf(docchain.ENOTFOUND, docchain.ReasonNoMainContent)
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.ContentText) == "" && !strings.Contains(contentHTML, "<img") {
		return nil, docchain.Errorf(docchain.ENOTFOUND, docchain.ReasonNoMainContent)
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" {
		title = docchain.UntitledPage
	}

	return &docchain.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
		ImageURL:    resolveImage(base, result.Metadata.Image),
	}, nil
}

// resolveImage makes an image reference absolute against base.
func resolveImage(base *url.URL, src string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") || base == nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
