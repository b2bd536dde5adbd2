package driven

// PromptStore provides access to task-framing prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptEnhance frames a page's raw text for the enhancement service.
	// The template expects a %s placeholder for the page text.
	PromptEnhance = "enhance"

	// PromptFormatSystem is the system prompt for the formatting service.
	// This prompt has no format placeholders.
	PromptFormatSystem = "format_system"

	// PromptFormat frames enhanced text for the formatting service.
	// The template expects a %s placeholder for the text.
	PromptFormat = "format"

	// PromptSummarise frames the full document text for summarisation.
	// The template expects a %s placeholder for the document text.
	PromptSummarise = "summarise"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service uses its built-in prompts.
	SetPromptStore(store PromptStore)
}
