package docchain

// SuccessorFinder detects the next page(s) of a sequential documentation
// chain.
type SuccessorFinder interface {
	// FindSuccessors returns absolute same-origin URLs of the pages that
	// follow baseURL, in priority order. An empty result ends the chain.
	FindSuccessors(baseURL, html string) ([]string, error)
}
