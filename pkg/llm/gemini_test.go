package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/helmcode/medicheck/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(baseURL, apiKey string) *Gemini {
	return NewGemini(&config.Config{
		APIKey:  apiKey,
		Model:   "gemini-flash-latest",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestGenerateSendsExpectedRequest(t *testing.T) {
	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-flash-latest:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello"},{"text":"ignored"}]}}]}`))
	}))
	defer srv.Close()

	text, err := newTestGemini(srv.URL, "test-key").Generate(context.Background(), "the prompt")

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "the prompt", gotBody.Contents[0].Parts[0].Text)
}

func TestGenerateMissingCredentialNeverDials(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := newTestGemini(srv.URL, "").Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGenerateUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "non success status", status: http.StatusForbidden, body: `{"error":{"message":"API key not valid"}}`, wantStatus: http.StatusForbidden},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantStatus: http.StatusInternalServerError},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`},
		{name: "no parts", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[]}}]}`},
		{name: "part without text", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`},
		{name: "not json", status: http.StatusOK, body: `<html>gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestGemini(srv.URL, "test-key").Generate(context.Background(), "prompt")

			var upstream *UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, tt.wantStatus, upstream.StatusCode)
		})
	}
}

func TestGenerateNetworkErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := newTestGemini(baseURL, "secret-key-value").Generate(context.Background(), "prompt")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotContains(t, err.Error(), "secret-key-value")
}

func TestGenerateHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestGemini(srv.URL, "test-key").Generate(ctx, "prompt")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"models":[{"name":"models/gemini-flash-latest","supportedGenerationMethods":["generateContent","countTokens"]}]}`))
	}))
	defer srv.Close()

	models, err := newTestGemini(srv.URL, "test-key").ListModels(context.Background())

	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "models/gemini-flash-latest", models[0].Name)
	assert.Equal(t, []string{"generateContent", "countTokens"}, models[0].SupportedGenerationMethods)
}

func TestNewGeminiDefaults(t *testing.T) {
	g := NewGemini(&config.Config{APIKey: "k", Model: "models/gemini-pro"})

	assert.Equal(t, "gemini-pro", g.GetModel())
	assert.Equal(t, config.DefaultBaseURL, g.baseURL)
	assert.Equal(t, config.DefaultTimeout, g.client.Timeout)
}
