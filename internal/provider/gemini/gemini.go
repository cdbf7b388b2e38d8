// Package gemini implements the AIProvider interface for the Google
// Generative Language API (Gemini). It uses go-resty/v2 for HTTP transport
// and requests JSON-constrained output through responseMimeType.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/revu-cli/revu/internal/provider"
	"github.com/spf13/viper"
)

func init() {
	provider.Register("gemini", NewProvider)
}

// Model tier aliases accepted from the --model flag.
var tierAliases = map[string]string{
	"flash": "gemini-1.5-flash",
	"pro":   "gemini-1.5-pro",
}

// ---------------------------------------------------------------------------
// Gemini-specific API types (request)
// ---------------------------------------------------------------------------

type apiPart struct {
	Text string `json:"text"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiGenerationConfig struct {
	MaxOutputTokens  int    `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type apiRequest struct {
	SystemInstruction *apiContent          `json:"systemInstruction,omitempty"`
	Contents          []apiContent         `json:"contents"`
	GenerationConfig  *apiGenerationConfig `json:"generationConfig,omitempty"`
}

// ---------------------------------------------------------------------------
// Gemini-specific API types (response)
// ---------------------------------------------------------------------------

type apiCandidate struct {
	Content      apiContent `json:"content"`
	FinishReason string     `json:"finishReason"`
}

type apiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type apiResponse struct {
	Candidates    []apiCandidate `json:"candidates"`
	UsageMetadata apiUsage       `json:"usageMetadata"`
	ModelVersion  string         `json:"modelVersion"`
}

type apiError struct {
	Error struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Status  string          `json:"status"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// ---------------------------------------------------------------------------
// Provider implementation
// ---------------------------------------------------------------------------

// Provider implements provider.AIProvider for the Gemini generateContent API.
type Provider struct {
	client  *resty.Client
	apiKey  string
	baseURL string
	model   string
	maxTok  int
}

// NewProvider is the factory function registered with the provider registry.
// It reads configuration from the supplied viper instance.
func NewProvider(v *viper.Viper) (provider.AIProvider, error) {
	apiKey := v.GetString("api_key")
	baseURL := v.GetString("base_url")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := resolveModel(v.GetString("model"))
	maxTok := v.GetInt("max_tokens")
	if maxTok == 0 {
		maxTok = 2048
	}
	timeout := v.GetDuration("timeout")
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Provider{
		client:  client,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		maxTok:  maxTok,
	}, nil
}

func resolveModel(model string) string {
	if model == "" {
		return "gemini-1.5-flash"
	}
	if full, ok := tierAliases[strings.ToLower(model)]; ok {
		return full
	}
	return model
}

// Info returns provider metadata.
func (p *Provider) Info() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:         "gemini",
		DisplayName:  "Google Gemini",
		Description:  "Google Generative Language API (gemini-1.5-flash, gemini-1.5-pro)",
		DefaultModel: "gemini-1.5-flash",
		KeyEnvVar:    "GEMINI_API_KEY",
	}
}

// Validate checks that the API key is set. No network round-trip: the check
// has to be cheap enough to run before every invocation.
func (p *Provider) Validate(ctx context.Context) error {
	if p.apiKey == "" {
		return &provider.ProviderError{
			Code:     provider.ErrCodeAuthentication,
			Message:  "GEMINI_API_KEY is not set",
			Provider: "gemini",
		}
	}
	return nil
}

// Complete performs a blocking generateContent call.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	} else {
		model = resolveModel(model)
	}
	maxTok := req.MaxTokens
	if maxTok == 0 {
		maxTok = p.maxTok
	}

	body := toAPIRequest(req, maxTok)

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("key", p.apiKey).
		SetBody(body).
		Post(fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model))
	if err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeProviderUnavailable,
			Message:  "HTTP request failed",
			Provider: "gemini",
			Cause:    err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, classifyHTTPError(resp.StatusCode(), resp.Body())
	}

	var apiResp apiResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeUnknown,
			Message:  "failed to decode response",
			Provider: "gemini",
			Cause:    err,
		}
	}

	return toCompletionResponse(model, &apiResp), nil
}

func toAPIRequest(req provider.CompletionRequest, maxTok int) apiRequest {
	out := apiRequest{
		GenerationConfig: &apiGenerationConfig{MaxOutputTokens: maxTok},
	}
	if req.JSONOnly {
		out.GenerationConfig.ResponseMimeType = "application/json"
	}
	for _, m := range req.Messages {
		switch m.Role {
		case provider.RoleSystem:
			out.SystemInstruction = &apiContent{Parts: []apiPart{{Text: m.Content}}}
		default:
			out.Contents = append(out.Contents, apiContent{
				Role:  "user",
				Parts: []apiPart{{Text: m.Content}},
			})
		}
	}
	return out
}

func toCompletionResponse(model string, r *apiResponse) *provider.CompletionResponse {
	out := &provider.CompletionResponse{
		Model: model,
		Usage: provider.Usage{
			PromptTokens:     r.UsageMetadata.PromptTokenCount,
			CompletionTokens: r.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      r.UsageMetadata.TotalTokenCount,
		},
	}
	if len(r.Candidates) > 0 {
		c := r.Candidates[0]
		out.FinishReason = c.FinishReason
		var parts []string
		for _, p := range c.Content.Parts {
			parts = append(parts, p.Text)
		}
		out.Content = strings.Join(parts, "")
	}
	return out
}

// classifyHTTPError maps a non-200 status and body to a normalized
// ProviderError. The message keeps the bracketed status prefix the Google
// client libraries use, so rate-limit output stays recognisable:
//
//	[429 Too Many Requests] Quota exceeded [{"@type": ...}]
func classifyHTTPError(status int, body []byte) *provider.ProviderError {
	msg := string(body)
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Error.Message != "" {
		msg = ae.Error.Message
		if len(ae.Error.Details) > 0 {
			msg = msg + " " + string(ae.Error.Details)
		}
	}
	msg = fmt.Sprintf("[%d %s] %s", status, http.StatusText(status), msg)

	code := provider.ErrCodeUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = provider.ErrCodeAuthentication
	case status == http.StatusTooManyRequests:
		code = provider.ErrCodeRateLimit
	case status == http.StatusBadRequest:
		code = provider.ErrCodeInvalidRequest
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		code = provider.ErrCodeTimeout
	case status >= 500:
		code = provider.ErrCodeProviderUnavailable
	}

	return &provider.ProviderError{
		Code:       code,
		Message:    msg,
		Provider:   "gemini",
		StatusCode: status,
	}
}
