package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docchain"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docchain.DocumentService = (*DocumentService)(nil)

// DocumentService implements docchain.DocumentService using SQLite.
// A document row holds the joined body; each page lives in the pages
// table with its word span and formatted section.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// CreateDocument stores a document and its pages in one transaction.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *docchain.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	doc.ID = uuid.New().String()
	doc.ContentHash = hashContent(doc.Content)
	doc.WordCount = docchain.CountWords(doc.Content)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (id, url, title, content, image, description, content_hash, word_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.URL, doc.Title, doc.Content, doc.Image, doc.Description, doc.ContentHash,
		doc.WordCount, doc.CreatedAt.Format(time.RFC3339), doc.UpdatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	if err := insertPages(ctx, tx, doc.ID, doc.Pages); err != nil {
		return err
	}

	return tx.Commit()
}

// FindDocumentByID retrieves a document and its pages by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docchain.Document, error) {
	doc, err := scanDocument(s.db.QueryRowContext(ctx, `
		SELECT id, url, title, content, image, description, content_hash, word_count, created_at, updated_at
		FROM documents
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docchain.Errorf(docchain.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	if doc.Pages, err = s.findPages(ctx, id); err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, newest first.
// Title matches are case-insensitive substrings. Page rows are not loaded.
func (s *DocumentService) FindDocuments(ctx context.Context, filter docchain.DocumentFilter) ([]*docchain.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, url, title, content, image, description, content_hash, word_count, created_at, updated_at
		FROM documents WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Title != nil {
		query.WriteString(" AND title LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(*filter.Title)+"%")
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docchain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// ReplaceDocument overwrites the body, pages, image and description of an
// existing document. The ID and creation time are kept.
func (s *DocumentService) ReplaceDocument(ctx context.Context, id string, doc *docchain.Document) (*docchain.Document, error) {
	existing, err := s.FindDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	doc.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	doc.ContentHash = hashContent(doc.Content)
	doc.WordCount = docchain.CountWords(doc.Content)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		UPDATE documents
		SET url = ?, title = ?, content = ?, image = ?, description = ?, content_hash = ?, word_count = ?, updated_at = ?
		WHERE id = ?
	`, doc.URL, doc.Title, doc.Content, doc.Image, doc.Description, doc.ContentHash, doc.WordCount,
		doc.UpdatedAt.Format(time.RFC3339), id); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM pages WHERE document_id = ?", id); err != nil {
		return nil, err
	}
	if err := insertPages(ctx, tx, id, doc.Pages); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument permanently removes a document. Pages are removed by the
// foreign key cascade.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docchain.Errorf(docchain.ENOTFOUND, "document not found")
	}

	return nil
}

func (s *DocumentService) findPages(ctx context.Context, documentID string) ([]*docchain.DocumentPage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT page_number, start_word, end_word, length_words, title, url, section
		FROM pages
		WHERE document_id = ?
		ORDER BY page_number ASC
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*docchain.DocumentPage
	for rows.Next() {
		var p docchain.DocumentPage
		if err := rows.Scan(&p.PageNumber, &p.StartWord, &p.EndWord, &p.LengthWords,
			&p.Title, &p.URL, &p.Section); err != nil {
			return nil, err
		}
		pages = append(pages, &p)
	}
	return pages, rows.Err()
}

func insertPages(ctx context.Context, tx *sql.Tx, documentID string, pages []*docchain.DocumentPage) error {
	for _, p := range pages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pages (document_id, page_number, start_word, end_word, length_words, title, url, section)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, documentID, p.PageNumber, p.StartWord, p.EndWord, p.LengthWords, p.Title, p.URL, p.Section); err != nil {
			return err
		}
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*docchain.Document, error) {
	var doc docchain.Document
	var createdAt, updatedAt string

	if err := row.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.Content, &doc.Image, &doc.Description,
		&doc.ContentHash, &doc.WordCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if doc.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if doc.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &doc, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
