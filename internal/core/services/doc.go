// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// PipelineService is the orchestrator: it owns the page loop, the stage
// fallbacks and the document status transitions.
package services
