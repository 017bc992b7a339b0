package mock

import (
	"context"

	"github.com/fwojciec/docchain"
)

var _ docchain.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docchain.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *docchain.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*docchain.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter docchain.DocumentFilter) ([]*docchain.Document, error)
	ReplaceDocumentFn  func(ctx context.Context, id string, doc *docchain.Document) (*docchain.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *docchain.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docchain.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter docchain.DocumentFilter) ([]*docchain.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) ReplaceDocument(ctx context.Context, id string, doc *docchain.Document) (*docchain.Document, error) {
	return s.ReplaceDocumentFn(ctx, id, doc)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
