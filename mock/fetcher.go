package mock

import (
	"context"

	"github.com/fwojciec/docchain"
)

var _ docchain.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docchain.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ docchain.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of docchain.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) (string, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) (string, error) {
	return f.FetchImageFn(ctx, url)
}

var _ docchain.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docchain.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
