package docchain

import "strings"

// IndexEntry locates one page inside an aggregated document body.
// StartWord is inclusive and EndWord exclusive; both are 0-based offsets
// into the whitespace-tokenized body.
type IndexEntry struct {
	PageNumber  int    `json:"pageNumber"`
	StartWord   int    `json:"startWord"`
	EndWord     int    `json:"endWord"`
	LengthWords int    `json:"lengthWords"`
	Title       string `json:"title"`
	URL         string `json:"url"`
}

// AggregatedDocument is the compiled output of one crawl.
type AggregatedDocument struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`

	// Sections holds the formatted text of each page, parallel to Index.
	Sections []string     `json:"sections"`
	Index    []IndexEntry `json:"index"`
}

// IsEmpty reports whether no page made it into the document.
func (d *AggregatedDocument) IsEmpty() bool {
	return len(d.Index) == 0
}

// Aggregate joins pages into one document body and builds the word-span
// index. Each separator between sections counts as one word, so slicing the
// whitespace-tokenized body by an entry's span yields that page's section.
func Aggregate(startURL, title string, pages []*Page) *AggregatedDocument {
	doc := &AggregatedDocument{
		URL:      startURL,
		Title:    title,
		Sections: make([]string, 0, len(pages)),
		Index:    make([]IndexEntry, 0, len(pages)),
	}

	start := 0
	for i, page := range pages {
		section := FormatSection(page)
		n := CountWords(section)
		doc.Sections = append(doc.Sections, section)
		doc.Index = append(doc.Index, IndexEntry{
			PageNumber:  i + 1,
			StartWord:   start,
			EndWord:     start + n,
			LengthWords: n,
			Title:       page.Title,
			URL:         page.URL,
		})
		start += n + CountWords(SectionSeparator)
	}
	doc.Content = strings.Join(doc.Sections, SectionSeparator)

	return doc
}

// CountWords returns the number of whitespace-delimited words in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// SliceWords returns words [start, end) of content joined by single spaces.
func SliceWords(content string, start, end int) (string, error) {
	words := strings.Fields(content)
	if start < 0 || end < start || end > len(words) {
		return "", Errorf(EINVALID, "word range [%d, %d) out of bounds for %d words", start, end, len(words))
	}
	return strings.Join(words[start:end], " "), nil
}
