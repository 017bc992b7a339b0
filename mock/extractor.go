package mock

import "github.com/fwojciec/docchain"

var _ docchain.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docchain.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*docchain.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*docchain.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
