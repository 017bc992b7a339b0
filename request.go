package docchain

import "net/url"

// MaxPagesLimit is the largest page cap a single crawl accepts.
const MaxPagesLimit = 50

// CrawlRequest describes one crawl of a documentation chain.
type CrawlRequest struct {
	// StartURL is the absolute URL of the first page of the chain.
	StartURL string `json:"startUrl"`

	// MaxPages caps the number of successfully processed pages.
	MaxPages int `json:"maxPages"`

	// ExistingTitle is set when re-crawling a stored document. It is used
	// verbatim as the document title.
	ExistingTitle string `json:"existingTitle,omitempty"`
}

// Validate returns an error if the request contains invalid fields.
func (r *CrawlRequest) Validate() error {
	if r.StartURL == "" {
		return Errorf(EINVALID, "start URL required")
	}
	u, err := url.Parse(r.StartURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "start URL must be an absolute http(s) URL: %q", r.StartURL)
	}
	if r.MaxPages < 1 || r.MaxPages > MaxPagesLimit {
		return Errorf(EINVALID, "max pages must be between 1 and %d", MaxPagesLimit)
	}
	return nil
}
