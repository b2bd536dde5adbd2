package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("gemini.model", "gemini-1.5-flash"))

	val, ok := store.Get("gemini.model")
	assert.True(t, ok)
	assert.Equal(t, "gemini-1.5-flash", val)

	_, ok = store.Get("gemini.api_key")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("openai.model", "gpt-4o-mini"))
	require.NoError(t, store.Set("openai.temperature", 0.3))
	require.NoError(t, store.Set("anthropic.max_tokens", 1024))
	require.NoError(t, store.Set("uploads.max_file_size", int64(2048)))
	require.NoError(t, store.Set("debug", true))
	require.NoError(t, store.Set("uploads.extensions", []any{".pdf", 3}))

	assert.Equal(t, "gpt-4o-mini", store.GetString("openai.model"))
	assert.Equal(t, "", store.GetString("anthropic.max_tokens"))

	assert.Equal(t, 1024, store.GetInt("anthropic.max_tokens"))
	assert.Equal(t, 2048, store.GetInt("uploads.max_file_size"))
	assert.Equal(t, 0, store.GetInt("openai.model"))

	assert.InDelta(t, 0.3, store.GetFloat("openai.temperature"), 0.0001)
	assert.InDelta(t, 1024.0, store.GetFloat("anthropic.max_tokens"), 0.0001)
	assert.Zero(t, store.GetFloat("missing"))

	assert.True(t, store.GetBool("debug"))
	assert.False(t, store.GetBool("openai.model"))

	assert.Equal(t, []string{".pdf"}, store.GetStringSlice("uploads.extensions"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("services.requests_per_minute", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("services.requests_per_minute")
		}()
	}
	wg.Wait()

	_, ok := store.Get("services.requests_per_minute")
	assert.True(t, ok)
}
