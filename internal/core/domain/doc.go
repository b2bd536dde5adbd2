// Package domain defines the core business entities for pdfocr.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded PDF and its processing status
//   - PageResult: The persisted final text of one page
//   - Summary: The document-level summary
//   - TextRequest: A single call to a remote text service
//   - Settings: The explicit configuration value for the pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
