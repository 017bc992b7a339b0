package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docchain"
)

var _ docchain.SuccessorFinder = (*LoggingSuccessorFinder)(nil)

// LoggingSuccessorFinder wraps a SuccessorFinder with logging.
type LoggingSuccessorFinder struct {
	next   docchain.SuccessorFinder
	logger *slog.Logger
}

// NewLoggingSuccessorFinder creates a new LoggingSuccessorFinder.
func NewLoggingSuccessorFinder(next docchain.SuccessorFinder, logger *slog.Logger) *LoggingSuccessorFinder {
	return &LoggingSuccessorFinder{next: next, logger: logger}
}

// FindSuccessors logs the candidates found on a page.
func (s *LoggingSuccessorFinder) FindSuccessors(baseURL, html string) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		}
		if len(urls) > 0 {
			attrs = append(attrs, "next", urls[0])
		}
		s.logger.Info("successors", attrs...)
	}(time.Now())
	return s.next.FindSuccessors(baseURL, html)
}
