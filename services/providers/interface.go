package providers

import (
	"context"
	"errors"
	"time"
)

// Provider represents a chat completion backend
type Provider interface {
	// Name returns the provider name (e.g., "openai")
	Name() string

	// ChatCompletion performs a chat completion request
	ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// IsAvailable reports whether the backend answers; shown on /readyz
	IsAvailable(ctx context.Context) bool
}

// ChatRequest represents a chat completion request
type ChatRequest struct {
	// Model identifier (e.g., "gpt-3.5-turbo")
	Model string `json:"model"`

	// Messages in the conversation
	Messages []Message `json:"messages"`

	// MaxTokens limits the response length
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 2.0). Always forwarded, so
	// zero means deterministic output rather than the provider default.
	Temperature float64 `json:"temperature"`

	// User identifier for abuse monitoring
	User string `json:"user,omitempty"`
}

// Message represents a single message in a conversation
type Message struct {
	// Role can be "system", "user", or "assistant"
	Role string `json:"role"`

	// Content is the message text
	Content string `json:"content"`
}

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatResponse represents a chat completion response
type ChatResponse struct {
	ID       string        `json:"id"`
	Model    string        `json:"model"`
	Choices  []Choice      `json:"choices"`
	Usage    Usage         `json:"usage"`
	Provider string        `json:"provider"`
	Latency  time.Duration `json:"latency"`
	Created  time.Time     `json:"created"`
}

// FirstContent returns the text of the first choice, if any
func (r *ChatResponse) FirstContent() (string, bool) {
	if r == nil || len(r.Choices) == 0 {
		return "", false
	}
	return r.Choices[0].Message.Content, true
}

// Choice represents a completion choice
type Choice struct {
	Index   int     `json:"index"`
	Message Message `json:"message"`

	// FinishReason indicates why the completion finished
	// Values: "stop", "length", "content_filter"
	FinishReason string `json:"finish_reason"`
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderConfig holds common configuration for providers
type ProviderConfig struct {
	// APIKey for authentication
	APIKey string

	// BaseURL for the API (optional override)
	BaseURL string

	// Timeout for each HTTP attempt
	Timeout time.Duration

	// MaxRetries for failed requests
	MaxRetries int

	// RetryDelay is the initial backoff interval
	RetryDelay time.Duration

	// Additional headers
	Headers map[string]string
}

// ProviderError represents an error from a provider
type ProviderError struct {
	// Provider that generated the error
	Provider string

	// Code is the error code
	Code string

	// Message is the error message
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// Retryable indicates if the request can be retried
	Retryable bool

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap implements error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new provider error
func NewProviderError(provider, code, message string, statusCode int, retryable bool, cause error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  retryable,
		Cause:      cause,
	}
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}
	return false
}
