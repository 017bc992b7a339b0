package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docchain"
)

var _ docchain.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   docchain.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next docchain.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize logs input and output sizes and delegates to the wrapped summarizer.
func (s *LoggingSummarizer) Summarize(ctx context.Context, content string, pageCount int) (summary string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"pages", pageCount,
			"words", docchain.CountWords(content),
			"summary_bytes", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, content, pageCount)
}
