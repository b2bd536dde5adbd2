// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
)

// TextService is a remote text-intelligence service.
// The pipeline binds one instance to each stage (enhance, format, summarise).
// A nil binding means the stage is unavailable and its fallback applies.
//
// Implementations include:
//   - Gemini (enhancement)
//   - OpenAI chat completions (formatting)
//   - Anthropic messages (summarisation)
type TextService interface {
	// Transform performs a single remote call for the request's task and
	// returns the response text. No retries are attempted.
	Transform(ctx context.Context, req domain.TextRequest) (string, error)

	// ModelName returns the model identifier used for requests.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
