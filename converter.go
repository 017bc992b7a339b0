package docchain

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., from an Extractor) into
	// normalized Markdown. Relative links resolve against pageURL.
	Convert(html, pageURL string) (string, error)
}
