// Package readability provides a docchain.Extractor backed by the
// Mozilla Readability algorithm.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/docchain"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docchain.Extractor at compile time.
var _ docchain.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Relative links
// and images are resolved against pageURL.
func (e *Extractor) Extract(rawHTML, pageURL string) (*docchain.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docchain.Errorf(docchain.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, docchain.Errorf(docchain.ENOTFOUND, docchain.ReasonNoMainContent)
	}
	if strings.TrimSpace(article.TextContent) == "" && !strings.Contains(article.Content, "<img") {
		return nil, docchain.Errorf(docchain.ENOTFOUND, docchain.ReasonNoMainContent)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = docchain.UntitledPage
	}

	return &docchain.ExtractResult{
		Title:       title,
		ContentHTML: article.Content,
		ImageURL:    article.Image,
	}, nil
}
