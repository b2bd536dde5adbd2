package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
)

var testDefaults = map[string]string{
	driven.PromptEnhance:      "Clean this page:\n\n%s",
	driven.PromptFormatSystem: "You format text.",
	driven.PromptFormat:       "Format:\n\n%s",
	driven.PromptSummarise:    "Summarise:\n\n%s",
}

func newTestPromptStore(t *testing.T) (*PromptStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewPromptStore(dir, testDefaults)
	require.NoError(t, err)
	return store, dir
}

func TestPromptStore_ImplementsInterface(t *testing.T) {
	var _ driven.PromptStore = (*PromptStore)(nil)
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewPromptStore("", testDefaults)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".pdfocr", "prompts"), store.Dir())
}

func TestNewPromptStore_NoIOUntilLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	_, err := NewPromptStore(dir, testDefaults)

	require.NoError(t, err)
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	store, dir := newTestPromptStore(t)

	_, err := store.Load(driven.PromptEnhance)
	require.NoError(t, err)

	for _, f := range []string{"enhance.txt", "format_system.txt", "format.txt", "summarise.txt", "README.md"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStore_Load_ReturnsDefaultContent(t *testing.T) {
	store, _ := newTestPromptStore(t)

	prompt, err := store.Load(driven.PromptFormat)

	require.NoError(t, err)
	assert.Equal(t, "Format:\n\n%s", prompt)
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enhance.txt"), []byte("  Custom: %s\n"), 0600))

	store, err := NewPromptStore(dir, testDefaults)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptEnhance)

	require.NoError(t, err)
	assert.Equal(t, "Custom: %s", prompt)
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summarise.txt")
	require.NoError(t, os.WriteFile(path, []byte("Mine: %s"), 0600))

	store, err := NewPromptStore(dir, testDefaults)
	require.NoError(t, err)
	_, err = store.Load(driven.PromptEnhance)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Mine: %s", string(data))
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	store, dir := newTestPromptStore(t)
	_, err := store.Load(driven.PromptEnhance)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "summarise.txt")))

	prompt, err := store.Load(driven.PromptSummarise)

	require.NoError(t, err)
	assert.Equal(t, testDefaults[driven.PromptSummarise], prompt)
}

func TestPromptStore_Load_EmptyFileFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "format.txt"), []byte("  \n"), 0600))

	store, err := NewPromptStore(dir, testDefaults)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptFormat)

	require.NoError(t, err)
	assert.Equal(t, testDefaults[driven.PromptFormat], prompt)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, _ := newTestPromptStore(t)

	_, err := store.Load("nonexistent")

	assert.Error(t, err)
}

func TestPromptStore_Load_CachesUntilReload(t *testing.T) {
	store, dir := newTestPromptStore(t)

	first, err := store.Load(driven.PromptEnhance)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "enhance.txt"), []byte("Edited: %s"), 0600))

	cached, err := store.Load(driven.PromptEnhance)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()

	fresh, err := store.Load(driven.PromptEnhance)
	require.NoError(t, err)
	assert.Equal(t, "Edited: %s", fresh)
}

func TestPromptStore_DefaultsAreCopied(t *testing.T) {
	defaults := map[string]string{driven.PromptEnhance: "A %s"}
	store, err := NewPromptStore(t.TempDir(), defaults)
	require.NoError(t, err)

	defaults[driven.PromptEnhance] = "B %s"

	prompt, err := store.Load(driven.PromptEnhance)
	require.NoError(t, err)
	assert.Equal(t, "A %s", prompt)
}

func TestPromptStore_InitFailureUsesDefaults(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := NewPromptStore(filepath.Join(blocker, "prompts"), testDefaults)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptEnhance)
	require.NoError(t, err)
	assert.Equal(t, testDefaults[driven.PromptEnhance], prompt)

	_, err = store.Load("nonexistent")
	assert.Error(t, err)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, _ := newTestPromptStore(t)

	var wg sync.WaitGroup
	results := make([]string, 20)
	for i := range results {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n], _ = store.Load(driven.PromptSummarise)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, testDefaults[driven.PromptSummarise], r)
	}
}
