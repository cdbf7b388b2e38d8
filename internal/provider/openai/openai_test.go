package openai

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

func newTestProvider(t *testing.T, baseURL string) provider.AIProvider {
	t.Helper()

	v := viper.New()
	v.Set("api_key", "test-key")
	v.Set("base_url", baseURL)
	v.Set("model", "gpt-4o")
	v.Set("timeout", "10s")

	p, err := NewProvider(v)
	require.NoError(t, err)
	return p
}

func TestComplete(t *testing.T) {
	var captured apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(apiResponse{
			ID:    "chatcmpl-test",
			Model: "gpt-4o",
			Choices: []apiChoice{
				{Index: 0, Message: apiMessage{Role: "assistant", Content: "Test response"}, FinishReason: "stop"},
			},
			Usage: apiUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		})
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	resp, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: "be strict"},
			{Role: provider.RoleUser, Content: "Hello"},
		},
		JSONOnly: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Test response", resp.Content)
	assert.Equal(t, "chatcmpl-test", resp.ID)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	assert.Equal(t, "gpt-4o", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestCompleteAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "Invalid API key",
				"type":    "authentication_error",
			},
		})
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	_, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "Hello"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrAuthentication)

	var pe *provider.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Invalid API key", pe.Message)
}

func TestCompleteRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "Rate limit reached", "type": "rate_limit_error"},
		})
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	_, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "Hello"}},
	})
	assert.ErrorIs(t, err, provider.ErrRateLimit)
}

func TestValidateMissingKey(t *testing.T) {
	p, err := NewProvider(viper.New())
	require.NoError(t, err)

	err = p.Validate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrAuthentication)
}

func TestInfo(t *testing.T) {
	p, err := NewProvider(viper.New())
	require.NoError(t, err)

	info := p.Info()
	assert.Equal(t, "openai", info.Name)
	assert.Equal(t, "OPENAI_API_KEY", info.KeyEnvVar)
	assert.Equal(t, "gpt-4o-mini", info.DefaultModel)
}
