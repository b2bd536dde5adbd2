package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies one of the remote text services.
type AIProvider string

// The three services the pipeline is built around.
const (
	// AIProviderGemini is Google Gemini, used for enhancement.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is OpenAI chat completions, used for formatting.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic messages, used for summarisation.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (enhancement)"
	case AIProviderOpenAI:
		return "OpenAI (formatting)"
	case AIProviderAnthropic:
		return "Anthropic (summarisation)"
	default:
		return unknownDescription
	}
}

// Task returns the pipeline stage the provider is bound to.
func (p AIProvider) Task() TextTask {
	switch p {
	case AIProviderGemini:
		return TaskEnhance
	case AIProviderOpenAI:
		return TaskFormat
	case AIProviderAnthropic:
		return TaskSummarise
	default:
		return ""
	}
}

// Default models and generation parameters.
const (
	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-sonnet-20241022"

	// DefaultFormatTemperature keeps formatting close to its input.
	DefaultFormatTemperature = 0.3

	// DefaultSummaryMaxTokens bounds the summary length.
	DefaultSummaryMaxTokens = 1024

	// DefaultMaxFileSize is the largest upload accepted (10 MiB).
	DefaultMaxFileSize int64 = 10 * 1024 * 1024

	DefaultDatabaseName = "pdf_ocr.db"
	DefaultUploadDir    = "uploads"
)

// ServiceSettings configures one remote text service.
type ServiceSettings struct {
	// APIKey is the credential for the service.
	APIKey string

	// Model is the fixed model identifier.
	Model string

	// BaseURL overrides the API endpoint. Empty uses the provider default.
	BaseURL string

	// Temperature is the sampling temperature. Nil leaves the provider
	// default; zero is sent as zero.
	Temperature *float64

	// MaxTokens bounds output size. Zero leaves the provider default.
	MaxTokens int

	// Timeout overrides the HTTP client timeout. Zero uses the adapter default.
	Timeout time.Duration
}

// IsConfigured returns true if the service has a credential.
func (s ServiceSettings) IsConfigured() bool {
	return s.APIKey != ""
}

// StorageSettings configures the document store.
type StorageSettings struct {
	// DataDir holds the database file.
	DataDir string

	// DatabaseName is the file name inside DataDir.
	DatabaseName string

	// InMemory keeps results in memory only. Nothing is written to disk.
	InMemory bool
}

// UploadSettings governs admission of files into the pipeline.
type UploadSettings struct {
	// Dir is the folder scanned by batch processing.
	Dir string

	// MaxFileSize is the largest accepted file in bytes.
	MaxFileSize int64

	// AllowedExtensions lists accepted extensions, lower case with dot.
	AllowedExtensions []string
}

// Settings is the explicit configuration value handed to the pipeline factory.
type Settings struct {
	Gemini    ServiceSettings
	OpenAI    ServiceSettings
	Anthropic ServiceSettings

	Storage StorageSettings
	Uploads UploadSettings

	// RequestsPerMinute paces calls to each remote service. Zero disables pacing.
	RequestsPerMinute int
}

// Service returns the settings for the given provider.
func (s *Settings) Service(p AIProvider) ServiceSettings {
	switch p {
	case AIProviderGemini:
		return s.Gemini
	case AIProviderOpenAI:
		return s.OpenAI
	case AIProviderAnthropic:
		return s.Anthropic
	default:
		return ServiceSettings{}
	}
}

// DefaultSettings returns settings with the stock models and limits.
func DefaultSettings() Settings {
	return Settings{
		Gemini: ServiceSettings{
			Model: DefaultGeminiModel,
		},
		OpenAI: ServiceSettings{
			Model:       DefaultOpenAIModel,
			Temperature: Ptr(DefaultFormatTemperature),
		},
		Anthropic: ServiceSettings{
			Model:     DefaultAnthropicModel,
			MaxTokens: DefaultSummaryMaxTokens,
		},
		Storage: StorageSettings{
			DatabaseName: DefaultDatabaseName,
		},
		Uploads: UploadSettings{
			Dir:               DefaultUploadDir,
			MaxFileSize:       DefaultMaxFileSize,
			AllowedExtensions: []string{".pdf"},
		},
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Providers lists the three services in pipeline order.
func Providers() []AIProvider {
	return []AIProvider{AIProviderGemini, AIProviderOpenAI, AIProviderAnthropic}
}
