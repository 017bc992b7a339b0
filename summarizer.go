package docchain

import "context"

// Summarizer produces a short description of a compiled document.
type Summarizer interface {
	// Summarize describes content, which spans pageCount pages and has its
	// code fences stripped.
	Summarize(ctx context.Context, content string, pageCount int) (string, error)
}
