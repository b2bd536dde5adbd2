package driving

import "github.com/custodia-labs/pdfocr/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves the current settings from environment, config file and defaults.
	Get() (domain.Settings, error)

	// Set persists a single configuration key.
	// Returns domain.ErrInvalidInput for unknown keys or malformed values.
	Set(key, value string) error

	// Keys returns the recognised configuration keys in display order.
	Keys() []string

	// Validate checks connectivity for one provider.
	Validate(provider domain.AIProvider) error
}
