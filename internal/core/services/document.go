package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes processed documents for viewing and export.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// List returns all documents, most recently registered first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Get returns a document with its pages and summary.
func (s *DocumentService) Get(ctx context.Context, documentID int64) (*domain.DocumentDetail, error) {
	return s.docStore.GetDocumentDetail(ctx, documentID)
}

// GetContent returns the full persisted text of a document.
func (s *DocumentService) GetContent(ctx context.Context, documentID int64) (string, error) {
	// Verify document exists
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return "", err
	}
	return s.docStore.GetFullText(ctx, documentID)
}

// Export renders per-page results as "--- Page N ---" blocks.
func (s *DocumentService) Export(ctx context.Context, documentID int64) (filename, content string, err error) {
	detail, err := s.docStore.GetDocumentDetail(ctx, documentID)
	if err != nil {
		return "", "", err
	}
	if len(detail.Pages) == 0 {
		return "", "", fmt.Errorf("%w: document %d has no extracted pages", domain.ErrNotFound, documentID)
	}
	return domain.ExportFilename(detail.Document.Filename), domain.FormatExport(detail.Pages), nil
}

// Delete removes a document and all its results.
func (s *DocumentService) Delete(ctx context.Context, documentID int64) error {
	return s.docStore.DeleteDocument(ctx, documentID)
}
