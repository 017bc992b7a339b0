package docchain

// Page is one successfully processed page of a chain, in visitation order.
type Page struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"` // Markdown
}

// Failure records a URL that was attempted but could not be processed.
type Failure struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}
