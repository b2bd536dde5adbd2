package domain

import (
	"fmt"
	"strings"
	"time"
)

// DocumentStatus is the processing state of a Document.
type DocumentStatus string

// Document statuses. Stored verbatim in the database.
const (
	// StatusPending is set at registration and while processing runs.
	StatusPending DocumentStatus = "pending"

	// StatusCompleted is set once every page has been handled and
	// summarisation has been attempted, whether or not it succeeded.
	StatusCompleted DocumentStatus = "completed"

	// StatusFailed is set when a fatal error stops processing.
	// Failed documents can be resumed.
	StatusFailed DocumentStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further processing is expected.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}

// Document is one uploaded PDF and its processing lifecycle record.
type Document struct {
	// ID is assigned by the store at registration.
	ID int64

	// Filename is the original base name of the file.
	Filename string

	// FilePath is where the source PDF lives on local disk.
	FilePath string

	// UploadedAt is when the document was registered.
	UploadedAt time.Time

	// Status is mutated only by the pipeline.
	Status DocumentStatus
}

// PageResult is the final text persisted for one page of a Document.
// It is identified by (DocumentID, PageNumber).
type PageResult struct {
	DocumentID int64
	PageNumber int
	Text       string
	CreatedAt  time.Time
}

// Summary is the document-level summary. At most one per document.
type Summary struct {
	DocumentID int64
	Text       string
	CreatedAt  time.Time
}

// DocumentDetail bundles a document with its persisted artifacts.
type DocumentDetail struct {
	Document Document

	// Pages are ordered by page number.
	Pages []PageResult

	// Summary is nil when none was produced.
	Summary *Summary
}

// PageSeparator joins persisted page texts into the full document text.
const PageSeparator = "\n\n"

// JoinPages concatenates page texts in the order given using PageSeparator.
func JoinPages(pages []PageResult) string {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, PageSeparator)
}

// FormatExport renders pages as "--- Page N ---" blocks for download.
func FormatExport(pages []PageResult) string {
	blocks := make([]string, len(pages))
	for i, p := range pages {
		blocks[i] = fmt.Sprintf("--- Page %d ---\n%s", p.PageNumber, p.Text)
	}
	return strings.Join(blocks, PageSeparator)
}

// ExportFilename returns the default export file name for a document.
func ExportFilename(filename string) string {
	return strings.ReplaceAll(filename, ".pdf", "") + "_ocr_results.txt"
}

// Page is raw text extracted from one PDF page.
type Page struct {
	// Number is 1-based.
	Number int

	// Text is the raw extracted text; may be empty.
	Text string
}

// IsBlank returns true if the page has no non-whitespace text.
func (p Page) IsBlank() bool {
	return IsBlank(p.Text)
}

// IsBlank returns true if s is empty or whitespace-only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
