package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrServiceUnavailable indicates a remote text service is not configured.
	// The stage bound to it degrades to its fallback policy.
	ErrServiceUnavailable = errors.New("text service unavailable")

	// Pipeline Errors.

	// ErrDocumentRead indicates the source file is missing, unreadable,
	// or not a valid PDF. Fatal for the document being processed.
	ErrDocumentRead = errors.New("document read failed")

	// ErrEnhancement indicates the enhancement service call failed.
	// Recovered by the pipeline: the raw page text is used instead.
	ErrEnhancement = errors.New("enhancement failed")

	// ErrFormatting indicates the formatting service call failed.
	// Recovered by the pipeline: the enhanced text is used instead.
	ErrFormatting = errors.New("formatting failed")

	// ErrSummarisation indicates the summarisation service call failed.
	// Recovered by the pipeline: no summary is stored.
	ErrSummarisation = errors.New("summarisation failed")

	// ErrStorage indicates a read or write against the document store failed.
	// Fatal for the document being processed.
	ErrStorage = errors.New("storage failed")
)

// StageError returns the sentinel error reported when the given task fails.
func StageError(task TextTask) error {
	switch task {
	case TaskEnhance:
		return ErrEnhancement
	case TaskFormat:
		return ErrFormatting
	case TaskSummarise:
		return ErrSummarisation
	default:
		return ErrInvalidInput
	}
}
