package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docchain"
)

var _ docchain.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   docchain.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docchain.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the extracted title and content size.
func (e *LoggingExtractor) Extract(html, pageURL string) (result *docchain.ExtractResult, err error) {
	defer func(begin time.Time) {
		var title string
		var size int
		if result != nil {
			title = result.Title
			size = len(result.ContentHTML)
		}
		e.logger.Info("extract",
			"url", pageURL,
			"title", title,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
