package docchain

import (
	"context"
	"time"
)

// Document is a stored aggregated document.
type Document struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	ContentHash string    `json:"contentHash"`
	WordCount   int       `json:"wordCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Pages holds the addressable page entries. FindDocuments leaves it empty.
	Pages []*DocumentPage `json:"pages,omitempty"`
}

// DocumentPage is one page entry of a stored document.
type DocumentPage struct {
	IndexEntry
	Section string `json:"section"`
}

// NewDocument builds a storable document from an aggregated one.
func NewDocument(agg *AggregatedDocument) *Document {
	doc := &Document{
		URL:         agg.URL,
		Title:       agg.Title,
		Content:     agg.Content,
		Image:       agg.Image,
		Description: agg.Description,
		WordCount:   CountWords(agg.Content),
		Pages:       make([]*DocumentPage, 0, len(agg.Index)),
	}
	for i, e := range agg.Index {
		doc.Pages = append(doc.Pages, &DocumentPage{IndexEntry: e, Section: agg.Sections[i]})
	}
	return doc
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if len(d.Pages) == 0 {
		return Errorf(EINVALID, "document must have at least one page")
	}
	return nil
}

// PageByNumber returns the page entry with the given 1-based number.
func (d *Document) PageByNumber(n int) (*DocumentPage, error) {
	for _, p := range d.Pages {
		if p.PageNumber == n {
			return p, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "page %d not found (document has %d pages)", n, len(d.Pages))
}

// ReadPage returns the words of page n sliced from the document body using
// the stored index.
func (d *Document) ReadPage(n int) (string, error) {
	p, err := d.PageByNumber(n)
	if err != nil {
		return "", err
	}
	return SliceWords(d.Content, p.StartWord, p.EndWord)
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument stores a document with its pages and assigns its ID.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document and its pages by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, without pages.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// ReplaceDocument replaces the content, pages, image and description of
	// an existing document, keeping its ID and creation time.
	// Returns ENOTFOUND if document does not exist.
	ReplaceDocument(ctx context.Context, id string, doc *Document) (*Document, error)

	// DeleteDocument permanently removes a document and its pages.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`
	URL   *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
