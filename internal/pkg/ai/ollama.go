package ai

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

	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
)

const (
	// DefaultOllamaEndpoint is the default API endpoint for Ollama.
	DefaultOllamaEndpoint = "http://localhost:11434"

	// OllamaAPIPath is the API path for chat completions.
	OllamaAPIPath = "/api/chat"
)

// OllamaProvider implements the Provider interface for a local Ollama server.
type OllamaProvider struct {
	httpClient *http.Client
	endpoint   string
}

// OllamaChatRequest represents a request to the Ollama chat API.
type OllamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []OllamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

// OllamaMessage represents a message in the Ollama chat API.
type OllamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OllamaChatResponse represents a response from the Ollama chat API.
type OllamaChatResponse struct {
	Model   string        `json:"model"`
	Message OllamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(endpoint string) (*OllamaProvider, error) {
	if endpoint == "" {
		endpoint = DefaultOllamaEndpoint
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, apperrors.NewInvalidConfigError("endpoint must start with http:// or https://")
	}

	return &OllamaProvider{
		httpClient: newHTTPClient(),
		endpoint:   endpoint,
	}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return ProviderNameOllama
}

// Endpoint returns the server base URL.
func (p *OllamaProvider) Endpoint() string {
	return p.endpoint
}

// Generate sends the prompt as a single user message. Ollama does not need an API key.
func (p *OllamaProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	chatReq := OllamaChatRequest{
		Model: req.Model,
		Messages: []OllamaMessage{
			{Role: "user", Content: req.Prompt},
		},
		Stream: false,
	}

	apperrors.LogAPIRequest(ProviderNameOllama, p.endpoint, req.Model, len(req.Prompt))
	startTime := time.Now()

	resp, err := p.doRequest(ctx, chatReq)
	if err != nil {
		return nil, wrapOllamaAPIError(err)
	}

	apperrors.LogAPIResponse(ProviderNameOllama, http.StatusOK, len(resp.Message.Content), time.Since(startTime))

	if resp.Error != "" {
		return nil, apperrors.NewAIProviderError(ProviderNameOllama, errors.New(resp.Error))
	}
	if resp.Message.Content == "" {
		return nil, apperrors.NewAIProviderError(ProviderNameOllama, errors.New("empty response"))
	}

	return &GenerateResponse{Text: resp.Message.Content}, nil
}

// doRequest performs the HTTP request to Ollama API.
func (p *OllamaProvider) doRequest(ctx context.Context, chatReq OllamaChatRequest) (*OllamaChatResponse, error) {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+OllamaAPIPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &OllamaAPIError{
			StatusCode: httpResp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	var resp OllamaChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &resp, nil
}

// OllamaAPIError represents an error from the Ollama API.
type OllamaAPIError struct {
	StatusCode int
	Message    string
}

func (e *OllamaAPIError) Error() string {
	return fmt.Sprintf("ollama API error (status %d): %s", e.StatusCode, e.Message)
}

// wrapOllamaAPIError wraps an Ollama API error with a user-friendly message.
func wrapOllamaAPIError(err error) error {
	var apiErr *OllamaAPIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusNotFound:
			return apperrors.Wrap(err, apperrors.ErrAIProviderFailed, "Ollama model not found").
				WithSuggestion("Please ensure the model is pulled using 'ollama pull <model>'")
		case http.StatusServiceUnavailable:
			return apperrors.Wrap(err, apperrors.ErrAIProviderFailed, "Ollama service unavailable").
				WithSuggestion("Please ensure Ollama is running using 'ollama serve'")
		default:
			return statusError(ProviderNameOllama, apiErr.StatusCode, err)
		}
	}

	if strings.Contains(err.Error(), "connection refused") {
		appErr := apperrors.NewNetworkError(err)
		appErr.Message = "cannot connect to Ollama"
		return appErr.WithSuggestion("Please ensure Ollama is running using 'ollama serve'")
	}

	return transportError(ProviderNameOllama, err)
}
