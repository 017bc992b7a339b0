package mock

import (
	"context"

	"github.com/fwojciec/docchain"
)

var _ docchain.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of docchain.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
