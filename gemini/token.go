package gemini

import (
	"context"

	"github.com/fwojciec/docchain"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenizerModel is the model whose local tokenizer NewTokenCounter loads
// when no model is given.
const TokenizerModel = "gemini-2.0-flash"

var _ docchain.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens offline using the Gemini tokenizer, so that
// compiled documents can report their size in model context terms.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = TokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, docchain.Errorf(docchain.EUNAVAILABLE, "loading tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
