package driven

import (
	"context"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
)

// PageExtractor reads raw per-page text out of a PDF on local disk.
// No AI is involved at this stage.
type PageExtractor interface {
	// Open validates the file and returns an iterator over its pages.
	// Returns an error wrapping domain.ErrDocumentRead if the file is
	// missing, unreadable, or not a valid PDF.
	Open(ctx context.Context, path string) (PageIterator, error)
}

// PageIterator is a lazy, finite, non-restartable sequence of pages.
//
// Usage:
//
//	for it.Next(ctx) {
//	    page := it.Page()
//	}
//	if err := it.Err(); err != nil { ... }
type PageIterator interface {
	// Next advances to the next page. Returns false when the sequence is
	// exhausted, an error occurred or ctx is done.
	Next(ctx context.Context) bool

	// Page returns the current page. Numbers start at 1 and increase by one.
	Page() domain.Page

	// PageCount returns the total number of pages in the document.
	PageCount() int

	// Err returns the first error encountered during iteration.
	Err() error

	// Close releases the underlying file.
	Close() error
}
