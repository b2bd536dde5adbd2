package driven

import (
	"context"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
)

// DocumentStore persists documents, page results and summaries.
// It is the sole mutator of persisted state. Each operation is atomic on
// its own; the multi-step pipeline is not wrapped in a transaction.
type DocumentStore interface {
	// Register inserts a new document with status pending and returns its ID.
	Register(ctx context.Context, filename, path string) (int64, error)

	// SavePageResult stores the final text for one page.
	// Upserts by (documentID, pageNumber).
	SavePageResult(ctx context.Context, documentID int64, pageNumber int, text string) error

	// GetPageResults returns all page results ordered by page number.
	GetPageResults(ctx context.Context, documentID int64) ([]domain.PageResult, error)

	// GetFullText returns page texts ordered by page number and joined
	// with domain.PageSeparator. Empty when no pages are stored.
	GetFullText(ctx context.Context, documentID int64) (string, error)

	// SaveSummary stores the document summary. Upserts by documentID.
	SaveSummary(ctx context.Context, documentID int64, text string) error

	// GetSummary returns the document summary or domain.ErrNotFound.
	GetSummary(ctx context.Context, documentID int64) (*domain.Summary, error)

	// SetStatus updates the document status in place.
	SetStatus(ctx context.Context, documentID int64, status domain.DocumentStatus) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, documentID int64) (*domain.Document, error)

	// ListDocuments returns all documents, most recently registered first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// GetDocumentDetail returns a document with its pages and summary.
	GetDocumentDetail(ctx context.Context, documentID int64) (*domain.DocumentDetail, error)

	// DeleteDocument removes a document and all dependent rows.
	DeleteDocument(ctx context.Context, documentID int64) error
}
