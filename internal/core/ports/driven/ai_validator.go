package driven

import "github.com/custodia-labs/pdfocr/internal/core/domain"

// AIConfigValidator validates remote text service configurations.
// Implementations verify connectivity to the underlying services.
type AIConfigValidator interface {
	// Validate pings the provider using the given settings.
	// Returns domain.ErrServiceUnavailable if the provider has no credential.
	Validate(provider domain.AIProvider, settings domain.ServiceSettings) error
}
