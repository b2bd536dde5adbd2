package driving

import "context"

// PipelineService drives documents through extraction, enhancement,
// formatting, persistence and summarisation. Processing is synchronous.
type PipelineService interface {
	// ProcessDocument registers the PDF at path and runs the full pipeline.
	// The returned ID is valid whenever registration succeeded, even if a
	// later fatal error is also returned.
	ProcessDocument(ctx context.Context, path string) (int64, error)

	// Resume re-runs the pipeline for a pending or failed document,
	// skipping pages and summary already persisted. No-op for completed
	// documents.
	Resume(ctx context.Context, documentID int64) error

	// ProcessDirectory processes every PDF in dir one at a time, in lexical
	// order, continuing past per-file failures.
	ProcessDirectory(ctx context.Context, dir string) (*BatchReport, error)
}

// BatchReport is the outcome of ProcessDirectory.
type BatchReport struct {
	// Completed holds the IDs of documents that finished successfully.
	Completed []int64

	// Failures holds one entry per file that hit a fatal error.
	Failures []BatchFailure
}

// BatchFailure records a file that could not be processed.
type BatchFailure struct {
	Path string

	// DocumentID is zero when registration itself failed.
	DocumentID int64

	Err error
}
