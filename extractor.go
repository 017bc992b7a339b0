package docchain

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title, "Untitled" when the page has none.
	Title string

	// ContentHTML is the main content region with navigation, headers,
	// footers and other page chrome removed.
	ContentHTML string

	// ImageURL is the absolute URL of the first image on the page, if any.
	ImageURL string
}

// Extractor selects the main content of an HTML page.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL. Returns ENOTFOUND with
	// message "no main content" when nothing is left after cleaning.
	Extract(html, pageURL string) (*ExtractResult, error)
}

// ReasonNoMainContent is the message of the error extractors return when a
// page has no content left after chrome removal.
const ReasonNoMainContent = "no main content"

// UntitledPage is the title reported for a page with no title of its own.
const UntitledPage = "Untitled"
