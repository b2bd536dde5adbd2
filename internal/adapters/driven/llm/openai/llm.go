// Package openai provides the formatting text service using the OpenAI
// chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

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
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = domain.DefaultOpenAIModel
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the OpenAI text service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Temperature is sent when set, including zero. Formatting uses 0.3.
	Temperature *float64

	// MaxTokens is sent when positive.
	MaxTokens int

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// Limiter paces requests. Nil disables pacing.
	Limiter *llm.RateLimiter
}

// TextService transforms text using OpenAI chat completions.
type TextService struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature *float64
	maxTokens   int
	limiter     *llm.RateLimiter
	promptStore driven.PromptStore
}

// chatCompletionRequest is the OpenAI /chat/completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature *float64            `json:"temperature,omitempty"`
}

// chatCompletionMsg is the OpenAI chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the OpenAI /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewTextService creates a new OpenAI text service.
func NewTextService(cfg Config) (*TextService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &TextService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		limiter:     cfg.Limiter,
	}, nil
}

// Transform sends one chat completion framed for the request's task.
func (s *TextService) Transform(ctx context.Context, req domain.TextRequest) (string, error) {
	prompt, err := llm.BuildPrompt(s.promptStore, req.Task, req.Text)
	if err != nil {
		return "", err
	}

	messages := make([]chatCompletionMsg, 0, 2)
	if prompt.System != "" {
		messages = append(messages, chatCompletionMsg{Role: "system", Content: prompt.System})
	}
	messages = append(messages, chatCompletionMsg{Role: "user", Content: prompt.User})

	done := llm.Trace("openai", s.model, req.Task, len(req.Text))
	out, err := s.chatCompletion(ctx, messages)
	done(len(out), err)
	return out, err
}

// chatCompletion performs a single /chat/completions call. No retries.
func (s *TextService) chatCompletion(ctx context.Context, messages []chatCompletionMsg) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := chatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: s.temperature,
	}
	if s.maxTokens > 0 {
		reqBody.MaxTokens = s.maxTokens
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	s.limiter.RecordRateLimit(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
		}
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// ModelName returns the chat model in use.
func (s *TextService) ModelName() string {
	return s.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *TextService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ping validates the service is reachable by checking the /models endpoint.
// This validates the API key without running inference.
func (s *TextService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *TextService) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
