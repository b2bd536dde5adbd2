package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *TextService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewTextService(context.Background(), Config{APIKey: "g-test", BaseURL: server.URL})
	require.NoError(t, err)
	return svc
}

func TestNewTextService_RequiresAPIKey(t *testing.T) {
	_, err := NewTextService(context.Background(), Config{})
	assert.Error(t, err)
}

func TestTransform_Enhance(t *testing.T) {
	var body map[string]any
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-1.5-flash:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello, world.\n"}],"role":"model"}}]}`))
	})

	out, err := svc.Transform(context.Background(), domain.TextRequest{Task: domain.TaskEnhance, Text: "He11o w0rld"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, world.", out)
	assert.Equal(t, "gemini-1.5-flash", svc.ModelName())

	raw, err := json.Marshal(body["contents"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Extract and clean all text from this PDF page content")
	assert.Contains(t, string(raw), "He11o w0rld")
}

func TestTransform_ZeroTemperatureIsSent(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}],"role":"model"}}]}`))
	}))
	defer server.Close()

	svc, err := NewTextService(context.Background(), Config{
		APIKey:      "g-test",
		BaseURL:     server.URL,
		Temperature: domain.Ptr(0.0),
	})
	require.NoError(t, err)

	_, err = svc.Transform(context.Background(), domain.TextRequest{Task: domain.TaskEnhance, Text: "x"})
	require.NoError(t, err)

	cfg, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", body)
	temp, ok := cfg["temperature"]
	require.True(t, ok, "temperature missing: %v", cfg)
	assert.InDelta(t, 0.0, temp, 1e-9)
}

func TestTransform_EmptyResponse(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  "}],"role":"model"}}]}`))
	})

	_, err := svc.Transform(context.Background(), domain.TextRequest{Task: domain.TaskEnhance, Text: "x"})
	assert.Error(t, err)
}

func TestTransform_ServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	})

	_, err := svc.Transform(context.Background(), domain.TextRequest{Task: domain.TaskEnhance, Text: "x"})
	assert.Error(t, err)
}

func TestTransform_UnknownTask(t *testing.T) {
	svc := newTestService(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := svc.Transform(context.Background(), domain.TextRequest{Task: "translate", Text: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-1.5-flash"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"models/gemini-1.5-flash"}`))
	})
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}
