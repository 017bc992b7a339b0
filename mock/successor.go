package mock

import "github.com/fwojciec/docchain"

var _ docchain.SuccessorFinder = (*SuccessorFinder)(nil)

// SuccessorFinder is a mock implementation of docchain.SuccessorFinder.
type SuccessorFinder struct {
	FindSuccessorsFn func(baseURL, html string) ([]string, error)
}

func (f *SuccessorFinder) FindSuccessors(baseURL, html string) ([]string, error) {
	return f.FindSuccessorsFn(baseURL, html)
}
