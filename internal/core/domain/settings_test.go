package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"gemini is valid", AIProviderGemini, true},
		{"openai is valid", AIProviderOpenAI, true},
		{"anthropic is valid", AIProviderAnthropic, true},
		{"empty string is invalid", AIProvider(""), false},
		{"ollama is invalid", AIProvider("ollama"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_Task(t *testing.T) {
	assert.Equal(t, TaskEnhance, AIProviderGemini.Task())
	assert.Equal(t, TaskFormat, AIProviderOpenAI.Task())
	assert.Equal(t, TaskSummarise, AIProviderAnthropic.Task())
	assert.Equal(t, TextTask(""), AIProvider("other").Task())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Contains(t, AIProviderGemini.Description(), "Gemini")
	assert.Contains(t, AIProviderOpenAI.Description(), "OpenAI")
	assert.Contains(t, AIProviderAnthropic.Description(), "Anthropic")
	assert.Equal(t, "Unknown", AIProvider("other").Description())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "gemini-1.5-flash", s.Gemini.Model)
	assert.Equal(t, "gpt-4o-mini", s.OpenAI.Model)
	require.NotNil(t, s.OpenAI.Temperature)
	assert.InDelta(t, 0.3, *s.OpenAI.Temperature, 0.0001)
	assert.Nil(t, s.Gemini.Temperature)
	assert.Equal(t, "claude-3-5-sonnet-20241022", s.Anthropic.Model)
	assert.Equal(t, 1024, s.Anthropic.MaxTokens)

	assert.Equal(t, "pdf_ocr.db", s.Storage.DatabaseName)
	assert.Equal(t, "uploads", s.Uploads.Dir)
	assert.Equal(t, int64(10*1024*1024), s.Uploads.MaxFileSize)
	require.Len(t, s.Uploads.AllowedExtensions, 1)
	assert.Equal(t, ".pdf", s.Uploads.AllowedExtensions[0])

	// Credentials are never defaulted.
	assert.False(t, s.Gemini.IsConfigured())
	assert.False(t, s.OpenAI.IsConfigured())
	assert.False(t, s.Anthropic.IsConfigured())
}

func TestSettings_Service(t *testing.T) {
	s := DefaultSettings()
	s.Gemini.APIKey = "g"
	s.OpenAI.APIKey = "o"
	s.Anthropic.APIKey = "a"

	assert.Equal(t, "g", s.Service(AIProviderGemini).APIKey)
	assert.Equal(t, "o", s.Service(AIProviderOpenAI).APIKey)
	assert.Equal(t, "a", s.Service(AIProviderAnthropic).APIKey)
	assert.Equal(t, ServiceSettings{}, s.Service(AIProvider("other")))
}

func TestProviders_Order(t *testing.T) {
	assert.Equal(t, []AIProvider{AIProviderGemini, AIProviderOpenAI, AIProviderAnthropic}, Providers())
}
