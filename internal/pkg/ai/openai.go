package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sashabaranov/go-openai"

	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
)

// OpenAICompatibleProvider talks to any chat completions API that follows the OpenAI wire format.
// Gemini, OpenAI and DeepSeek are all served by it with different base URLs.
type OpenAICompatibleProvider struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAICompatibleProvider creates a provider for the given base URL.
// An empty base URL uses go-openai's default.
func NewOpenAICompatibleProvider(name, baseURL string) *OpenAICompatibleProvider {
	return &OpenAICompatibleProvider{
		name:       name,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

// Name returns the provider name.
func (p *OpenAICompatibleProvider) Name() string {
	return p.name
}

// BaseURL returns the API base URL the provider sends requests to.
func (p *OpenAICompatibleProvider) BaseURL() string {
	if p.baseURL == "" {
		return openai.DefaultConfig("").BaseURL
	}
	return p.baseURL
}

// Generate sends the prompt as a single user message.
func (p *OpenAICompatibleProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.APIKey == "" {
		return nil, apperrors.NewMissingAPIKeyError(p.name)
	}

	clientConfig := openai.DefaultConfig(req.APIKey)
	clientConfig.BaseURL = p.BaseURL()
	clientConfig.HTTPClient = p.httpClient
	client := openai.NewClientWithConfig(clientConfig)

	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	}

	apperrors.LogAPIRequest(p.name, clientConfig.BaseURL, req.Model, len(req.Prompt))
	startTime := time.Now()

	resp, err := client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, p.wrapAPIError(err)
	}

	responseLen := 0
	if len(resp.Choices) > 0 {
		responseLen = len(resp.Choices[0].Message.Content)
	}
	apperrors.LogAPIResponse(p.name, http.StatusOK, responseLen, time.Since(startTime))

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, apperrors.NewAIProviderError(p.name, errors.New("empty response"))
	}

	return &GenerateResponse{Text: resp.Choices[0].Message.Content}, nil
}

// wrapAPIError maps a go-openai error onto the application error codes.
func (p *OpenAICompatibleProvider) wrapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(p.name, apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(p.name, reqErr.HTTPStatusCode, err)
	}

	return transportError(p.name, err)
}

// statusError classifies a non-2xx HTTP response.
func statusError(provider string, status int, err error) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.NewAuthenticationError(provider).WithContext("status", status)
	case http.StatusTooManyRequests:
		return apperrors.NewRateLimitError(provider)
	default:
		return apperrors.Wrap(err, apperrors.ErrAIProviderFailed,
			fmt.Sprintf("%s API error (status %d)", provider, status)).
			WithSuggestion("Please check the model name and endpoint")
	}
}

// transportError classifies an error that occurred before a response was received.
func transportError(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewTimeoutError(err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return apperrors.NewNetworkError(err)
	}

	return apperrors.NewAIProviderError(provider, err)
}
