// Package provider defines the types and interfaces for multi-provider AI
// support. It abstracts away the differences between generation services
// (Google Gemini, OpenAI-compatible endpoints) behind a unified interface so
// the commit flow can switch providers without changing application logic.
//
// Design principles:
//   - Idiomatic Go: context propagation, error values
//   - go-resty/v2 as the HTTP transport layer
//   - spf13/viper for configuration management
//   - Normalized error codes across providers
//   - Registry/factory pattern for provider discovery
package provider

import (
	"context"
	"fmt"
)

// Role represents the role of a message participant.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the provider-agnostic request structure that gets
// translated into each provider's native format by the implementation.
type CompletionRequest struct {
	// Model is the provider-specific model identifier. Empty means the
	// provider's configured default.
	Model string `json:"model"`

	// Messages is the ordered conversation (one system, one user message in
	// the review flow).
	Messages []Message `json:"messages"`

	// MaxTokens limits the response length where the provider supports it.
	MaxTokens int `json:"max_tokens,omitempty"`

	// JSONOnly asks the provider to constrain output to a JSON document
	// (Gemini responseMimeType, OpenAI response_format).
	JSONOnly bool `json:"-"`
}

// CompletionResponse is the provider-agnostic response from a blocking
// completion call.
type CompletionResponse struct {
	// ID is the provider-assigned response identifier, when one exists.
	ID string `json:"id"`

	// Model is the model that actually served the request.
	Model string `json:"model"`

	// Content is the generated text.
	Content string `json:"content"`

	// Usage contains token accounting for the request.
	Usage Usage `json:"usage"`

	// FinishReason indicates why generation stopped.
	FinishReason string `json:"finish_reason"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrorCode classifies errors returned by providers into actionable
// categories so the caller can decide how to react without inspecting
// provider-specific payloads.
type ErrorCode string

const (
	ErrCodeAuthentication      ErrorCode = "authentication"
	ErrCodeRateLimit           ErrorCode = "rate_limit"
	ErrCodeInvalidRequest      ErrorCode = "invalid_request"
	ErrCodeProviderUnavailable ErrorCode = "provider_unavailable"
	ErrCodeTimeout             ErrorCode = "timeout"
	ErrCodeUnknown             ErrorCode = "unknown"
)

// ProviderError is a structured error that carries both a normalized code
// and the original provider-specific details. It implements the standard
// error interface and supports errors.Is / errors.As unwrapping.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Provider   string
	StatusCode int
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (status %d): %v",
			e.Provider, e.Code, e.Message, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s (status %d)",
		e.Provider, e.Code, e.Message, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for use with errors.Is().
var (
	ErrAuthentication      = &ProviderError{Code: ErrCodeAuthentication}
	ErrRateLimit           = &ProviderError{Code: ErrCodeRateLimit}
	ErrInvalidRequest      = &ProviderError{Code: ErrCodeInvalidRequest}
	ErrProviderUnavailable = &ProviderError{Code: ErrCodeProviderUnavailable}
	ErrTimeout             = &ProviderError{Code: ErrCodeTimeout}
)

// Is allows errors.Is to match ProviderErrors by code.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ProviderInfo describes a registered provider for introspection and
// user-facing help text.
type ProviderInfo struct {
	// Name is the canonical short name used in configuration (e.g. "gemini").
	Name string

	// DisplayName is the human-readable name.
	DisplayName string

	// Description is a one-line summary for help text.
	Description string

	// DefaultModel is the model used when the user does not specify one.
	DefaultModel string

	// KeyEnvVar is the environment variable holding the credential.
	KeyEnvVar string
}

// AIProvider is the central abstraction. Every generation service implements
// this interface so the rest of the application can use any of them
// interchangeably.
//
// Calls are blocking and are issued one at a time by the session loop; there
// is no automatic retry. A failed call surfaces to the caller and the user
// decides whether to try again.
type AIProvider interface {
	// Info returns static metadata about this provider.
	Info() ProviderInfo

	// Complete sends a completion request and blocks until the full response
	// is available. The context controls cancellation and timeouts.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Validate checks that the provider is correctly configured (API key
	// present) and returns a descriptive error if not. It runs before any
	// staging logic touches the repository.
	Validate(ctx context.Context) error
}
