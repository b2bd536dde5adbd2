package driving

import (
	"context"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
)

// DocumentService exposes processed documents for viewing and export.
type DocumentService interface {
	// List returns all documents, most recently registered first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get returns a document with its pages and summary.
	Get(ctx context.Context, documentID int64) (*domain.DocumentDetail, error)

	// GetContent returns the full persisted text of a document.
	GetContent(ctx context.Context, documentID int64) (string, error)

	// Export renders the per-page results as a downloadable text file body
	// and returns it with its suggested file name.
	Export(ctx context.Context, documentID int64) (filename, content string, err error)

	// Delete removes a document and all its results.
	Delete(ctx context.Context, documentID int64) error
}
