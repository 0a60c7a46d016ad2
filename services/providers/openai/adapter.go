package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/upb/blog-platform/services/providers"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	providerName   = "openai"
)

// OpenAIAdapter implements the Provider interface for OpenAI-compatible
// chat completion APIs
type OpenAIAdapter struct {
	config     providers.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIAdapter creates a new OpenAI adapter
func NewOpenAIAdapter(config providers.ProviderConfig, logger *zap.Logger) *OpenAIAdapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OpenAIAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// Name returns the provider name
func (a *OpenAIAdapter) Name() string {
	return providerName
}

// ChatCompletion performs a chat completion request. Transport failures,
// 429 and 5xx responses are retried with exponential backoff.
func (a *OpenAIAdapter) ChatCompletion(ctx context.Context, req *providers.ChatRequest) (*providers.ChatResponse, error) {
	startTime := time.Now()

	reqBody, err := json.Marshal(a.buildOpenAIRequest(req))
	if err != nil {
		return nil, providers.NewProviderError(a.Name(), "MARSHAL_ERROR", "Failed to marshal request", 0, false, err)
	}

	var openaiResp *OpenAIChatResponse
	operation := func() error {
		resp, err := a.do(ctx, reqBody)
		if err != nil {
			if !providers.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		openaiResp = resp
		return nil
	}

	err = backoff.RetryNotify(operation, a.retryPolicy(ctx), func(err error, wait time.Duration) {
		a.logger.Warn("completion request failed, retrying",
			zap.String("provider", a.Name()),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
	})
	if err != nil {
		var provErr *providers.ProviderError
		if errors.As(err, &provErr) {
			return nil, provErr
		}
		return nil, providers.NewProviderError(a.Name(), "HTTP_ERROR", "HTTP request failed", 0, true, err)
	}

	return a.convertToUnifiedResponse(openaiResp, time.Since(startTime)), nil
}

func (a *OpenAIAdapter) retryPolicy(ctx context.Context) backoff.BackOffContext {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = a.config.RetryDelay
	policy.MaxInterval = 10 * a.config.RetryDelay
	retries := a.config.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx)
}

// do performs a single attempt
func (a *OpenAIAdapter) do(ctx context.Context, body []byte) (*OpenAIChatResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, providers.NewProviderError(a.Name(), "REQUEST_ERROR", "Failed to create request", 0, false, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		// A cancelled caller is not worth retrying
		retryable := ctx.Err() == nil
		return nil, providers.NewProviderError(a.Name(), "HTTP_ERROR", "HTTP request failed", 0, retryable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, providers.NewProviderError(a.Name(), "READ_ERROR", "Failed to read response", httpResp.StatusCode, true, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, a.handleErrorResponse(httpResp.StatusCode, respBody)
	}

	var openaiResp OpenAIChatResponse
	if err := json.Unmarshal(respBody, &openaiResp); err != nil {
		return nil, providers.NewProviderError(a.Name(), "UNMARSHAL_ERROR", "Failed to unmarshal response", httpResp.StatusCode, false, err)
	}
	return &openaiResp, nil
}

// IsAvailable checks if the provider is currently available
func (a *OpenAIAdapter) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.BaseURL+"/models", nil)
	if err != nil {
		return false
	}

	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// buildOpenAIRequest converts the unified request to OpenAI format
func (a *OpenAIAdapter) buildOpenAIRequest(req *providers.ChatRequest) *OpenAIChatRequest {
	openaiReq := &OpenAIChatRequest{
		Model:       req.Model,
		Messages:    make([]OpenAIMessage, len(req.Messages)),
		Temperature: req.Temperature,
	}

	for i, msg := range req.Messages {
		openaiReq.Messages[i] = OpenAIMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	if req.MaxTokens > 0 {
		openaiReq.MaxTokens = &req.MaxTokens
	}
	if req.User != "" {
		openaiReq.User = &req.User
	}

	return openaiReq
}

// convertToUnifiedResponse converts an OpenAI response to unified format
func (a *OpenAIAdapter) convertToUnifiedResponse(openaiResp *OpenAIChatResponse, latency time.Duration) *providers.ChatResponse {
	resp := &providers.ChatResponse{
		ID:       openaiResp.ID,
		Model:    openaiResp.Model,
		Provider: a.Name(),
		Choices:  make([]providers.Choice, len(openaiResp.Choices)),
		Usage: providers.Usage{
			PromptTokens:     openaiResp.Usage.PromptTokens,
			CompletionTokens: openaiResp.Usage.CompletionTokens,
			TotalTokens:      openaiResp.Usage.TotalTokens,
		},
		Latency: latency,
		Created: time.Unix(openaiResp.Created, 0),
	}

	for i, choice := range openaiResp.Choices {
		resp.Choices[i] = providers.Choice{
			Index: choice.Index,
			Message: providers.Message{
				Role:    choice.Message.Role,
				Content: choice.Message.Content,
			},
			FinishReason: choice.FinishReason,
		}
	}

	return resp
}

// handleErrorResponse handles OpenAI error responses
func (a *OpenAIAdapter) handleErrorResponse(statusCode int, body []byte) error {
	retryable := statusCode >= 500 || statusCode == http.StatusTooManyRequests

	var errResp OpenAIErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		msg := fmt.Sprintf("unexpected status %d", statusCode)
		return providers.NewProviderError(a.Name(), "UNKNOWN_ERROR", msg, statusCode, retryable, err)
	}

	return providers.NewProviderError(
		a.Name(),
		errResp.Error.Type,
		errResp.Error.Message,
		statusCode,
		retryable,
		nil,
	)
}

// OpenAI-specific request/response types

type OpenAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	MaxTokens   *int            `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
	User        *string         `json:"user,omitempty"`
}

type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIChatResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []OpenAIChoice `json:"choices"`
	Usage   OpenAIUsage    `json:"usage"`
}

type OpenAIChoice struct {
	Index        int           `json:"index"`
	Message      OpenAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type OpenAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type OpenAIErrorResponse struct {
	Error OpenAIError `json:"error"`
}

type OpenAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}
