package llm

import (
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/logger"
)

// Trace logs the start of a remote call and returns a function that logs
// its outcome. Each call gets a request id so the pair can be correlated.
func Trace(provider, model string, task domain.TextTask, inputLen int) func(outputLen int, err error) {
	reqID := uuid.NewString()
	start := time.Now()

	logger.Get().Debug().
		Str("req_id", reqID).
		Str("provider", provider).
		Str("model", model).
		Str("task", task.String()).
		Int("input_len", inputLen).
		Msg("text service request")

	return func(outputLen int, err error) {
		evt := logger.Get().Debug()
		if err != nil {
			evt = evt.Err(err)
		}
		evt.Str("req_id", reqID).
			Str("provider", provider).
			Int("output_len", outputLen).
			Int64("elapsed_ms", time.Since(start).Milliseconds()).
			Msg("text service response")
	}
}
