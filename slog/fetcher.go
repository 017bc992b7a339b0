// Package slog provides logging decorators for docchain services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docchain"
)

// Ensure decorators implement their interfaces.
var (
	_ docchain.Fetcher      = (*LoggingFetcher)(nil)
	_ docchain.ImageFetcher = (*LoggingImageFetcher)(nil)
)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   docchain.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docchain.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingImageFetcher wraps an ImageFetcher with logging.
type LoggingImageFetcher struct {
	next   docchain.ImageFetcher
	logger *slog.Logger
}

// NewLoggingImageFetcher creates a new LoggingImageFetcher.
func NewLoggingImageFetcher(next docchain.ImageFetcher, logger *slog.Logger) *LoggingImageFetcher {
	return &LoggingImageFetcher{next: next, logger: logger}
}

// FetchImage logs the image download and delegates to the wrapped fetcher.
func (f *LoggingImageFetcher) FetchImage(ctx context.Context, url string) (dataURI string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch image",
			"url", url,
			"bytes", len(dataURI),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchImage(ctx, url)
}
