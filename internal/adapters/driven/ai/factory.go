// Package ai provides factory functions for creating the remote text services.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/pdfocr/internal/adapters/driven/llm"
	"github.com/custodia-labs/pdfocr/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/pdfocr/internal/adapters/driven/llm/gemini"
	"github.com/custodia-labs/pdfocr/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult holds the text service bound to each stage.
// A nil service means the stage runs on its fallback.
type InitResult struct {
	Enhancer   driven.TextService
	Formatter  driven.TextService
	Summariser driven.TextService
	Warnings   []string // Non-fatal issues that left a stage unbound.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	for _, svc := range []driven.TextService{r.Enhancer, r.Formatter, r.Summariser} {
		if svc != nil {
			_ = svc.Close()
		}
	}
}

// CreateStages builds the fixed bindings: Gemini enhances, OpenAI formats
// and Anthropic summarises. Unconfigured or broken providers are reported
// as warnings rather than errors.
func CreateStages(ctx context.Context, settings domain.Settings, prompts driven.PromptStore) *InitResult {
	result := &InitResult{}

	for _, provider := range domain.Providers() {
		svc, err := CreateTextService(ctx, provider, settings.Service(provider), settings.RequestsPerMinute)
		switch {
		case err != nil:
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", provider, err))
			continue
		case svc == nil:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: no API key configured, %s stage will fall back", provider, provider.Task()))
			continue
		}

		if aware, ok := svc.(driven.PromptStoreAware); ok && prompts != nil {
			aware.SetPromptStore(prompts)
		}

		switch provider.Task() {
		case domain.TaskEnhance:
			result.Enhancer = svc
		case domain.TaskFormat:
			result.Formatter = svc
		case domain.TaskSummarise:
			result.Summariser = svc
		}
	}

	return result
}

// CreateTextService creates the text service for a provider.
// Returns nil if the provider has no credential.
func CreateTextService(
	ctx context.Context,
	provider domain.AIProvider,
	settings domain.ServiceSettings,
	requestsPerMinute int,
) (driven.TextService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	limiter := llm.NewRateLimiter(requestsPerMinute)

	switch provider {
	case domain.AIProviderGemini:
		return gemini.NewTextService(ctx, gemini.Config{
			APIKey:      settings.APIKey,
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			Temperature: settings.Temperature,
			MaxTokens:   settings.MaxTokens,
			Timeout:     settings.Timeout,
			Limiter:     limiter,
		})

	case domain.AIProviderOpenAI:
		return openai.NewTextService(openai.Config{
			APIKey:      settings.APIKey,
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			Temperature: settings.Temperature,
			MaxTokens:   settings.MaxTokens,
			Timeout:     settings.Timeout,
			Limiter:     limiter,
		})

	case domain.AIProviderAnthropic:
		return anthropic.NewTextService(anthropic.Config{
			APIKey:    settings.APIKey,
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			MaxTokens: settings.MaxTokens,
			Timeout:   settings.Timeout,
			Limiter:   limiter,
		})

	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// ValidateConfig creates a service for the provider and pings it.
func ValidateConfig(provider domain.AIProvider, settings domain.ServiceSettings) error {
	if !settings.IsConfigured() {
		return fmt.Errorf("%w: %s has no API key", domain.ErrServiceUnavailable, provider)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	svc, err := CreateTextService(ctx, provider, settings, 0)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrServiceUnavailable, err)
	}
	return nil
}
