// Package gemini provides the enhancement text service using the
// Google Gemini API through the genai SDK.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/pdfocr/internal/adapters/driven/llm"
	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
)

// Ensure TextService implements the interfaces.
var (
	_ driven.TextService      = (*TextService)(nil)
	_ driven.PromptStoreAware = (*TextService)(nil)
)

// Default configuration values.
const (
	DefaultModel   = domain.DefaultGeminiModel
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Gemini text service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Empty uses the SDK default.
	BaseURL string

	// Model is the model to use (default: gemini-1.5-flash).
	Model string

	// Temperature is sent when set, including zero.
	Temperature *float64

	// MaxTokens bounds the output when positive.
	MaxTokens int

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// Limiter paces requests. Nil disables pacing.
	Limiter *llm.RateLimiter
}

// TextService transforms text using Gemini generateContent.
type TextService struct {
	client      *genai.Client
	httpClient  *http.Client
	model       string
	temperature *float64
	maxTokens   int
	limiter     *llm.RateLimiter
	promptStore driven.PromptStore
}

// NewTextService creates a new Gemini text service.
func NewTextService(ctx context.Context, cfg Config) (*TextService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &TextService{
		client:      client,
		httpClient:  httpClient,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		limiter:     cfg.Limiter,
	}, nil
}

// Transform sends one generateContent call framed for the request's task.
func (s *TextService) Transform(ctx context.Context, req domain.TextRequest) (string, error) {
	prompt, err := llm.BuildPrompt(s.promptStore, req.Task, req.Text)
	if err != nil {
		return "", err
	}

	done := llm.Trace("gemini", s.model, req.Task, len(req.Text))
	out, err := s.generate(ctx, prompt)
	done(len(out), err)
	return out, err
}

// generate performs a single generateContent call. No retries.
func (s *TextService) generate(ctx context.Context, prompt llm.Prompt) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if prompt.System != "" {
		config.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}
	if s.temperature != nil {
		config.Temperature = genai.Ptr(float32(*s.temperature))
	}
	if s.maxTokens > 0 {
		config.MaxOutputTokens = int32(s.maxTokens)
	}

	res, err := s.client.Models.GenerateContent(ctx, s.model, []*genai.Content{
		genai.NewContentFromText(prompt.User, genai.RoleUser),
	}, config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: no response text returned")
	}
	return text, nil
}

// ModelName returns the model in use.
func (s *TextService) ModelName() string {
	return s.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *TextService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ping validates the API key by fetching the configured model.
func (s *TextService) Ping(ctx context.Context) error {
	if _, err := s.client.Models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *TextService) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}
