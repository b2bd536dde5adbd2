package ai

import (
	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates text service configurations by pinging them.
type ConfigValidator struct{}

// NewConfigValidator creates a new config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate pings the provider with the given settings.
func (v *ConfigValidator) Validate(provider domain.AIProvider, settings domain.ServiceSettings) error {
	return ValidateConfig(provider, settings)
}
