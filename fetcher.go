package docchain

import "context"

// Fetcher retrieves the raw HTML of one URL.
type Fetcher interface {
	// Fetch returns the HTML body of url. Failures carry a human-readable
	// reason such as "HTTP 404" or "timeout" as their error message.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// ImageFetcher downloads an image and embeds it as a data URI.
type ImageFetcher interface {
	// FetchImage returns url as "data:<content-type>;base64,<payload>".
	FetchImage(ctx context.Context, url string) (dataURI string, err error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
