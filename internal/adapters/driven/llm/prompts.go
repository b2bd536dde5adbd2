package llm

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
)

// DefaultPrompts are the built-in task-framing prompts.
// They seed the user-editable prompt files and serve as fallbacks.
var DefaultPrompts = map[string]string{
	driven.PromptEnhance: "Extract and clean all text from this PDF page content. " +
		"Format it properly and return only the text:\n\n%s",

	driven.PromptFormatSystem: "You are a text formatting assistant. Clean up and properly format " +
		"OCR-extracted text, fixing spacing, line breaks, and structure while preserving all content.",

	driven.PromptFormat: "Format this OCR text:\n\n%s",

	driven.PromptSummarise: "Provide a concise summary of this document text:\n\n%s",
}

// Prompt is the framed request for one task.
type Prompt struct {
	// System is empty for tasks without a system instruction.
	System string
	User   string
}

// BuildPrompt frames text for task using store, falling back to DefaultPrompts.
func BuildPrompt(store driven.PromptStore, task domain.TextTask, text string) (Prompt, error) {
	switch task {
	case domain.TaskEnhance:
		return Prompt{User: fill(load(store, driven.PromptEnhance), text)}, nil
	case domain.TaskFormat:
		return Prompt{
			System: load(store, driven.PromptFormatSystem),
			User:   fill(load(store, driven.PromptFormat), text),
		}, nil
	case domain.TaskSummarise:
		return Prompt{User: fill(load(store, driven.PromptSummarise), text)}, nil
	default:
		return Prompt{}, fmt.Errorf("%w: unknown task %q", domain.ErrInvalidInput, task)
	}
}

// load returns the named prompt from store, or the built-in default.
func load(store driven.PromptStore, name string) string {
	if store != nil {
		if prompt, err := store.Load(name); err == nil && prompt != "" {
			return prompt
		}
	}
	return DefaultPrompts[name]
}

// fill substitutes the first %s in tpl with text. Text is appended when
// a customised template has lost its placeholder.
func fill(tpl, text string) string {
	if !strings.Contains(tpl, "%s") {
		return tpl + "\n\n" + text
	}
	return strings.Replace(tpl, "%s", text, 1)
}
