package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
)

type stubPrompts map[string]string

func (p stubPrompts) Load(name string) (string, error) {
	if v, ok := p[name]; ok {
		return v, nil
	}
	return "", errors.New("missing")
}

func (p stubPrompts) Reload() {}

func TestBuildPrompt_Defaults(t *testing.T) {
	tests := []struct {
		task       domain.TextTask
		wantSystem bool
		wantUser   string
	}{
		{domain.TaskEnhance, false, "Extract and clean all text from this PDF page content. Format it properly and return only the text:\n\nbody"},
		{domain.TaskFormat, true, "Format this OCR text:\n\nbody"},
		{domain.TaskSummarise, false, "Provide a concise summary of this document text:\n\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.task.String(), func(t *testing.T) {
			p, err := BuildPrompt(nil, tt.task, "body")
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, p.User)
			assert.Equal(t, tt.wantSystem, p.System != "")
		})
	}
}

func TestBuildPrompt_StoreOverrides(t *testing.T) {
	store := stubPrompts{driven.PromptSummarise: "TL;DR %s"}

	p, err := BuildPrompt(store, domain.TaskSummarise, "text")
	require.NoError(t, err)
	assert.Equal(t, "TL;DR text", p.User)

	// Missing entries fall back to defaults.
	p, err = BuildPrompt(store, domain.TaskFormat, "text")
	require.NoError(t, err)
	assert.Equal(t, "Format this OCR text:\n\ntext", p.User)
}

func TestBuildPrompt_TextIsNotInterpreted(t *testing.T) {
	p, err := BuildPrompt(nil, domain.TaskEnhance, "100% of %s and %d")
	require.NoError(t, err)
	assert.Contains(t, p.User, "100% of %s and %d")
}

func TestBuildPrompt_TemplateWithoutPlaceholder(t *testing.T) {
	store := stubPrompts{driven.PromptEnhance: "Clean this up."}

	p, err := BuildPrompt(store, domain.TaskEnhance, "text")
	require.NoError(t, err)
	assert.Equal(t, "Clean this up.\n\ntext", p.User)
}

func TestBuildPrompt_UnknownTask(t *testing.T) {
	_, err := BuildPrompt(nil, "translate", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
