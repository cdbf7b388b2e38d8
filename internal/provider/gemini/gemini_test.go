package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revu-cli/revu/internal/provider"
)

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()

	v := viper.New()
	v.Set("api_key", "test-key")
	v.Set("base_url", baseURL)

	p, err := NewProvider(v)
	require.NoError(t, err)
	return p.(*Provider)
}

func TestComplete(t *testing.T) {
	var captured apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [
				{"content": {"role": "model", "parts": [{"text": "{\"commitMessage\":\"feat: x\"}"}]}, "finishReason": "STOP"}
			],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 7, "totalTokenCount": 19}
		}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	resp, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: "be strict"},
			{Role: provider.RoleUser, Content: "review this"},
		},
		JSONOnly: true,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"commitMessage":"feat: x"}`, resp.Content)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, 12, resp.Usage.PromptTokens)
	assert.Equal(t, 7, resp.Usage.CompletionTokens)
	assert.Equal(t, 19, resp.Usage.TotalTokens)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "be strict", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "review this", captured.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
}

func TestCompleteRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{
			"error": {
				"code": 429,
				"message": "Quota exceeded",
				"status": "RESOURCE_EXHAUSTED",
				"details": [{"@type": "type.googleapis.com/google.rpc.QuotaFailure"}]
			}
		}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	_, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "x"}},
	})
	require.Error(t, err)

	var pe *provider.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, provider.ErrCodeRateLimit, pe.Code)
	assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
	assert.Contains(t, pe.Message, "[429 Too Many Requests] Quota exceeded")
	assert.Contains(t, pe.Message, "@type")
}

func TestCompleteAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	_, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "x"}},
	})

	var pe *provider.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, provider.ErrCodeAuthentication, pe.Code)
	assert.ErrorIs(t, err, provider.ErrAuthentication)
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	_, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "x"}},
	})

	var pe *provider.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, provider.ErrCodeProviderUnavailable, pe.Code)
	assert.Contains(t, pe.Message, "[500 Internal Server Error]")
}

func TestValidateMissingKey(t *testing.T) {
	v := viper.New()
	p, err := NewProvider(v)
	require.NoError(t, err)

	err = p.Validate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrAuthentication)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gemini-1.5-flash", resolveModel(""))
	assert.Equal(t, "gemini-1.5-flash", resolveModel("flash"))
	assert.Equal(t, "gemini-1.5-pro", resolveModel("Pro"))
	assert.Equal(t, "gemini-2.0-exp", resolveModel("gemini-2.0-exp"))
}

func TestModelOverridePerRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-pro:generateContent", r.URL.Path)
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	resp, err := p.Complete(context.Background(), provider.CompletionRequest{
		Model:    "pro",
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, "gemini-1.5-pro", resp.Model)
}
