// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PageExtractor: Reads raw per-page text from a PDF
//   - DocumentStore: Document, page result and summary persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades to its fallback policy:
//
//   - TextService: Remote enhancement, formatting or summarisation
//   - PromptStore: Customisable task-framing prompts
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
