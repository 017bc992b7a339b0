// Package fs exports compiled documents as markdown files.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docchain"
	"gopkg.in/yaml.v3"
)

// IndexSuffix is appended to the markdown file name for the index sidecar.
const IndexSuffix = ".index.json"

// URLToPath converts a documentation URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docchain.Errorf(docchain.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	path := strings.TrimPrefix(u.Path, "/")
	switch {
	case path == "":
		return "index.md", nil
	case strings.HasSuffix(path, "/"):
		return path + "index.md", nil
	default:
		return path + ".md", nil
	}
}

// DocumentPath returns the export path of a document relative to the
// output directory: the host followed by URLToPath of the start URL.
func DocumentPath(rawURL string) (string, error) {
	rel, err := URLToPath(rawURL)
	if err != nil {
		return "", err
	}
	u, _ := url.Parse(rawURL)
	if u.Host == "" {
		return rel, nil
	}
	return filepath.Join(u.Host, filepath.FromSlash(rel)), nil
}

// frontMatter is the YAML header of an exported document.
type frontMatter struct {
	Title       string `yaml:"title"`
	Source      string `yaml:"source"`
	Pages       int    `yaml:"pages"`
	Words       int    `yaml:"words"`
	Description string `yaml:"description,omitempty"`
	Crawled     string `yaml:"crawled"`
}

// FormatDocument formats a document with YAML front matter.
func FormatDocument(doc *docchain.Document) (string, error) {
	crawled := doc.UpdatedAt
	if crawled.IsZero() {
		crawled = time.Now().UTC()
	}

	header, err := yaml.Marshal(frontMatter{
		Title:       doc.Title,
		Source:      doc.URL,
		Pages:       len(doc.Pages),
		Words:       docchain.CountWords(doc.Content),
		Description: doc.Description,
		Crawled:     crawled.Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(doc.Content)
	b.WriteString("\n")
	return b.String(), nil
}

// index is the JSON sidecar written next to an exported document.
type index struct {
	URL   string                `json:"url"`
	Title string                `json:"title"`
	Words int                   `json:"words"`
	Pages []docchain.IndexEntry `json:"pages"`
}

// Writer writes documents as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocument writes doc as markdown with its index sidecar and returns the
// path of the markdown file. Files are replaced atomically.
func (w *Writer) WriteDocument(ctx context.Context, doc *docchain.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, err := DocumentPath(doc.URL)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(w.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return "", err
	}

	entries := make([]docchain.IndexEntry, len(doc.Pages))
	for i, p := range doc.Pages {
		entries[i] = p.IndexEntry
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(index{URL: doc.URL, Title: doc.Title, Words: docchain.CountWords(doc.Content), Pages: entries}); err != nil {
		return "", err
	}

	if err := writeFileAtomic(fullPath, []byte(content)); err != nil {
		return "", err
	}
	if err := writeFileAtomic(fullPath+IndexSuffix, buf.Bytes()); err != nil {
		return "", err
	}
	return fullPath, nil
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
