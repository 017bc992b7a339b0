package mock

import (
	"context"

	"github.com/fwojciec/docchain"
)

var _ docchain.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of docchain.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, content string, pageCount int) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, content string, pageCount int) (string, error) {
	return s.SummarizeFn(ctx, content, pageCount)
}
