package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyGeminiAPIKey      = "gemini.api_key"
	KeyGeminiModel       = "gemini.model"
	KeyGeminiBaseURL     = "gemini.base_url"
	KeyGeminiTemperature = "gemini.temperature"
	KeyGeminiTimeout     = "gemini.timeout"
	KeyOpenAIAPIKey      = "openai.api_key"
	KeyOpenAIModel       = "openai.model"
	KeyOpenAIBaseURL     = "openai.base_url"
	KeyOpenAITemperature = "openai.temperature"
	KeyOpenAITimeout     = "openai.timeout"
	KeyAnthropicAPIKey   = "anthropic.api_key"
	KeyAnthropicModel    = "anthropic.model"
	KeyAnthropicBaseURL  = "anthropic.base_url"
	KeyAnthropicMaxTok   = "anthropic.max_tokens"
	KeyAnthropicTimeout  = "anthropic.timeout"
	KeyDataDir           = "storage.data_dir"
	KeyDatabaseName      = "storage.database_name"
	KeyInMemory          = "storage.in_memory"
	KeyUploadDir         = "uploads.dir"
	KeyMaxFileSize       = "uploads.max_file_size"
	KeyAllowedExtensions = "uploads.allowed_extensions"
	KeyRequestsPerMinute = "services.requests_per_minute"
)

// Environment variables, which take precedence over the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvDataDir         = "PDFOCR_DATA_DIR"
	EnvUploadDir       = "PDFOCR_UPLOAD_DIR"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
	kindList
)

type settingKey struct {
	name string
	kind keyKind
	env  string
}

// settingKeys lists every recognised key in display order.
var settingKeys = []settingKey{
	{KeyGeminiAPIKey, kindString, EnvGeminiAPIKey},
	{KeyGeminiModel, kindString, ""},
	{KeyGeminiBaseURL, kindString, ""},
	{KeyGeminiTemperature, kindFloat, ""},
	{KeyGeminiTimeout, kindDuration, ""},
	{KeyOpenAIAPIKey, kindString, EnvOpenAIAPIKey},
	{KeyOpenAIModel, kindString, ""},
	{KeyOpenAIBaseURL, kindString, ""},
	{KeyOpenAITemperature, kindFloat, ""},
	{KeyOpenAITimeout, kindDuration, ""},
	{KeyAnthropicAPIKey, kindString, EnvAnthropicAPIKey},
	{KeyAnthropicModel, kindString, ""},
	{KeyAnthropicBaseURL, kindString, ""},
	{KeyAnthropicMaxTok, kindInt, ""},
	{KeyAnthropicTimeout, kindDuration, ""},
	{KeyDataDir, kindString, EnvDataDir},
	{KeyDatabaseName, kindString, ""},
	{KeyInMemory, kindBool, ""},
	{KeyUploadDir, kindString, EnvUploadDir},
	{KeyMaxFileSize, kindInt, ""},
	{KeyAllowedExtensions, kindList, ""},
	{KeyRequestsPerMinute, kindInt, ""},
}

// SettingsService resolves settings from environment, config file and defaults.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get resolves the current settings. Environment variables override the
// config file, which overrides defaults.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	settings.Gemini.APIKey = s.getString(KeyGeminiAPIKey, EnvGeminiAPIKey, "")
	settings.Gemini.Model = s.getString(KeyGeminiModel, "", settings.Gemini.Model)
	settings.Gemini.BaseURL = s.getString(KeyGeminiBaseURL, "", "")
	settings.Gemini.Temperature = s.getFloat(KeyGeminiTemperature, settings.Gemini.Temperature)

	settings.OpenAI.APIKey = s.getString(KeyOpenAIAPIKey, EnvOpenAIAPIKey, "")
	settings.OpenAI.Model = s.getString(KeyOpenAIModel, "", settings.OpenAI.Model)
	settings.OpenAI.BaseURL = s.getString(KeyOpenAIBaseURL, "", "")
	settings.OpenAI.Temperature = s.getFloat(KeyOpenAITemperature, settings.OpenAI.Temperature)

	settings.Anthropic.APIKey = s.getString(KeyAnthropicAPIKey, EnvAnthropicAPIKey, "")
	settings.Anthropic.Model = s.getString(KeyAnthropicModel, "", settings.Anthropic.Model)
	settings.Anthropic.BaseURL = s.getString(KeyAnthropicBaseURL, "", "")
	settings.Anthropic.MaxTokens = s.getInt(KeyAnthropicMaxTok, settings.Anthropic.MaxTokens)

	var err error
	if settings.Gemini.Timeout, err = s.getDuration(KeyGeminiTimeout); err != nil {
		return settings, err
	}
	if settings.OpenAI.Timeout, err = s.getDuration(KeyOpenAITimeout); err != nil {
		return settings, err
	}
	if settings.Anthropic.Timeout, err = s.getDuration(KeyAnthropicTimeout); err != nil {
		return settings, err
	}

	settings.Storage.DataDir = s.getString(KeyDataDir, EnvDataDir, settings.Storage.DataDir)
	settings.Storage.DatabaseName = s.getString(KeyDatabaseName, "", settings.Storage.DatabaseName)
	settings.Storage.InMemory = s.configStore.GetBool(KeyInMemory)

	settings.Uploads.Dir = s.getString(KeyUploadDir, EnvUploadDir, settings.Uploads.Dir)
	settings.Uploads.MaxFileSize = int64(s.getInt(KeyMaxFileSize, int(settings.Uploads.MaxFileSize)))
	if exts := normaliseExtensions(s.configStore.GetStringSlice(KeyAllowedExtensions)); len(exts) > 0 {
		settings.Uploads.AllowedExtensions = exts
	}

	settings.RequestsPerMinute = s.getInt(KeyRequestsPerMinute, settings.RequestsPerMinute)

	return settings, nil
}

// Set parses and persists a single configuration key.
func (s *SettingsService) Set(key, value string) error {
	k, ok := lookupKey(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch k.kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 2 {
			return fmt.Errorf("%w: %s must be a number between 0 and 2", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s must be a duration such as 90s or 2m", domain.ErrInvalidInput, key)
		}
		parsed = d.String()
	case kindList:
		exts := normaliseExtensions(strings.Split(value, ","))
		if len(exts) == 0 {
			return fmt.Errorf("%w: %s must list at least one extension", domain.ErrInvalidInput, key)
		}
		parsed = exts
	default:
		parsed = strings.TrimSpace(value)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised configuration keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.name
	}
	return keys
}

// Validate pings the provider with the current settings.
func (s *SettingsService) Validate(provider domain.AIProvider) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	svc := settings.Service(provider)
	if !svc.IsConfigured() {
		return fmt.Errorf("%w: %s has no API key", domain.ErrServiceUnavailable, provider)
	}
	if s.aiValidator == nil {
		return nil
	}
	return s.aiValidator.Validate(provider, svc)
}

func lookupKey(name string) (settingKey, bool) {
	for _, k := range settingKeys {
		if k.name == name {
			return k, true
		}
	}
	return settingKey{}, false
}

// getString returns the env value if set, then the config value, then def.
func (s *SettingsService) getString(key, env, def string) string {
	if env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

// getFloat returns nil-able floats so that a configured zero is kept.
func (s *SettingsService) getFloat(key string, def *float64) *float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return domain.Ptr(s.configStore.GetFloat(key))
}

// getDuration returns zero when key is unset, leaving the adapter default.
func (s *SettingsService) getDuration(key string) (time.Duration, error) {
	v := s.configStore.GetString(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	return d, nil
}

// normaliseExtensions lower-cases entries and adds the leading dot.
func normaliseExtensions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
